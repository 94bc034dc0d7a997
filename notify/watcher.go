package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warp/salary-ticker/payroll"
)

// DefaultQueueSize bounds the number of undelivered messages.
const DefaultQueueSize = 16

// Watcher turns snapshot transitions into messages.
//
// A work-completed message is sent when the status moves from working to
// completed, at most once per day. A pay day message is sent on the first
// snapshot of a pay day.
type Watcher struct {
	Notifier Notifier
	Timeout  time.Duration

	queue chan Message

	mu            sync.Mutex
	lastStatus    payroll.WorkStatus
	completedSent payroll.Date
	paydaySent    payroll.Date

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewWatcher(n Notifier) *Watcher {
	if n == nil {
		n = LogNotifier{}
	}
	return &Watcher{
		Notifier: n,
		Timeout:  10 * time.Second,
		queue:    make(chan Message, DefaultQueueSize),
	}
}

// Start launches the delivery worker.
func (w *Watcher) Start() {
	w.startOnce.Do(func() {
		w.mu.Lock()
		queue := w.queue
		w.mu.Unlock()
		if queue == nil {
			return
		}
		w.wg.Add(1)
		go w.deliver(queue)
	})
}

// Close stops accepting messages and waits until the queue has drained.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		close(w.queue)
		w.queue = nil
		w.mu.Unlock()
	})
	w.wg.Wait()
}

func (w *Watcher) deliver(queue <-chan Message) {
	defer w.wg.Done()

	for msg := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
		if err := w.Notifier.Notify(ctx, msg); err != nil {
			log.Printf("[Notify] Error delivering %s message: %v", msg.Kind, err)
		}
		cancel()
	}
}

// ===== ticker.Sink =====

func (w *Watcher) SetTitle(string, bool) {}
func (w *Watcher) SetWorking(bool) {}

func (w *Watcher) Publish(snap payroll.Snapshot) {
	today := payroll.DateOf(snap.AsOf)

	w.mu.Lock()
	var out []Message
	if snap.Period.Start.Equal(today) && !w.paydaySent.Equal(today) {
		w.paydaySent = today
		out = append(out, PaydayMessage(snap))
	}
	if w.lastStatus == payroll.StatusWorking && snap.WorkStatus == payroll.StatusCompleted &&
		!w.completedSent.Equal(today) {
		w.completedSent = today
		out = append(out, CompletedMessage(snap))
	}
	w.lastStatus = snap.WorkStatus
	for _, msg := range out {
		w.enqueue(msg)
	}
	w.mu.Unlock()
}

// enqueue never blocks the ticker. Caller holds mu.
func (w *Watcher) enqueue(msg Message) {
	if w.queue == nil {
		return
	}
	select {
	case w.queue <- msg:
	default:
		log.Printf("[Notify] Queue full, dropping %s message", msg.Kind)
	}
}

// ===== MESSAGES =====

func CompletedMessage(snap payroll.Snapshot) Message {
	return Message{
		Kind: KindWorkCompleted,
		Text: fmt.Sprintf("Work is done for today. You earned %s (%s since pay day).",
			payroll.FormatKRW(snap.TodayEarnings), payroll.FormatKRW(snap.AccumulatedEarnings)),
	}
}

func PaydayMessage(snap payroll.Snapshot) Message {
	return Message{
		Kind: KindPayday,
		Text: fmt.Sprintf("Today is pay day. Next pay day: %s.", snap.Period.End),
	}
}
