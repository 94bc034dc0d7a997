package api

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/salary-ticker/payroll"
)

// subscriberBuffer is how many snapshots a slow subscriber may fall behind
// before ticks are dropped for it.
const subscriberBuffer = 4

// Broadcaster fans published snapshots out to stream subscribers.
// It is a ticker.Sink and never blocks the ticker.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]chan payroll.Snapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[string]chan payroll.Snapshot)}
}

// Subscribe registers a new subscriber and returns its ID and channel.
func (b *Broadcaster) Subscribe() (string, <-chan payroll.Snapshot) {
	id := uuid.NewString()
	ch := make(chan payroll.Snapshot, subscriberBuffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Len is the number of active subscribers.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broadcaster) SetTitle(string, bool) {}
func (b *Broadcaster) SetWorking(bool) {}

func (b *Broadcaster) Publish(snap payroll.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			log.Printf("[API] Subscriber %s is behind, dropping tick", id)
		}
	}
}
