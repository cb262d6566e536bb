// Package events fans alert records out to in-process subscribers (the
// recorder, diagnostics) without coupling the dispatch path to any of them.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type Broadcaster struct {
	subscribers map[uint64]chan *models.AlertRecord
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.AlertRecord),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan *models.AlertRecord) {
	id := b.nextID.Add(1)
	ch := make(chan *models.AlertRecord, 64)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Publish never blocks the dispatch path: records for subscribers with a full
// buffer are dropped.
func (b *Broadcaster) Publish(rec *models.AlertRecord) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- rec:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so consumers drain and exit.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
