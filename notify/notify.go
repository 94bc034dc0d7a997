/*
Package notify delivers one-off messages about the work day.

PURPOSE:
  The ticker publishes a snapshot every second. Watcher looks at that stream
  for the two moments a user wants to hear about: the shift just ended, and
  today is pay day. Messages go to a Notifier, which is Telegram when a bot
  token is configured and the process log otherwise.

DESIGN:
  - Watcher is a ticker.Sink, so it plugs into the same fan-out as the tray
  - Detection runs on the ticker goroutine and never blocks it
  - Delivery runs on a small queue worker; failures are logged and dropped

SEE ALSO:
  - watcher.go: Transition detection
  - telegram.go: Telegram delivery
*/
package notify

import (
	"context"
	"log"
)

// Kind tells messages apart.
type Kind string

const (
	KindWorkCompleted Kind = "work-completed"
	KindPayday        Kind = "payday"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Notifier delivers a message somewhere a person will see it.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msg Message) error {
	log.Printf("[Notify] %s: %s", msg.Kind, msg.Text)
	return nil
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error { return f(ctx, msg) }
