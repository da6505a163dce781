// Package eventstream implements the onEvent side channel (§6 "Main entry
// point": onEvent(msg, progress) at ~30 checkpoints) as a per-job broadcast
// channel plus an optional websocket server for remote watchers. Grounded
// on the teacher's internal/gateway/run.EventBroker per-run channel map;
// the websocket transport itself (declared in the teacher's go.mod but not
// exercised by any teacher source file) is wired here via gorilla/websocket.
package eventstream

import (
	"strings"
	"sync"
	"time"
)

const completedJobRetention = 30 * time.Second

// Event is one onEvent checkpoint (§6).
type Event struct {
	JobID    string `json:"jobId"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

// Broker manages per-job event channels, mirroring EventBroker's
// allocate/get/cleanup lifecycle.
type Broker struct {
	mu     sync.RWMutex
	events map[string]chan Event
}

func NewBroker() *Broker {
	return &Broker{events: make(map[string]chan Event)}
}

// Allocate creates and registers a new buffered event channel for a job.
func (b *Broker) Allocate(jobID string, size int) chan Event {
	if size <= 0 {
		size = 32
	}
	ch := make(chan Event, size)
	b.mu.Lock()
	b.events[strings.TrimSpace(jobID)] = ch
	b.mu.Unlock()
	return ch
}

// Get returns the event channel for a job.
func (b *Broker) Get(jobID string) (chan Event, bool) {
	b.mu.RLock()
	ch, ok := b.events[strings.TrimSpace(jobID)]
	b.mu.RUnlock()
	return ch, ok
}

// Publish sends an event on the job's channel, non-blocking: a full or
// absent channel (no watcher attached) never slows down the analysis.
func (b *Broker) Publish(jobID, message string, progress int) {
	id := strings.TrimSpace(jobID)
	if id == "" {
		return
	}
	b.mu.RLock()
	ch, ok := b.events[id]
	b.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case ch <- Event{JobID: id, Message: message, Progress: progress}:
	default:
	}
}

// ScheduleCleanup removes a job's event channel after a retention period,
// closing it so any attached websocket writer loop exits cleanly.
func (b *Broker) ScheduleCleanup(jobID string) {
	time.AfterFunc(completedJobRetention, func() {
		id := strings.TrimSpace(jobID)
		b.mu.Lock()
		if ch, ok := b.events[id]; ok {
			close(ch)
			delete(b.events, id)
		}
		b.mu.Unlock()
	})
}

// OnEvent returns a callback bound to one job, the shape
// internal/orchestrator calls at each checkpoint (§6).
func (b *Broker) OnEvent(jobID string) func(message string, progress int) {
	return func(message string, progress int) {
		b.Publish(jobID, message, progress)
	}
}
