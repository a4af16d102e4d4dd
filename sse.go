package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// subscriber is a single SSE connection following one puzzle.
type subscriber struct {
	ch       chan string
	puzzleID string
}

// Broadcaster fans puzzle events out to SSE subscribers.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for a puzzle.
func (b *Broadcaster) Subscribe(puzzleID string) *subscriber {
	sub := &subscriber{
		ch:       make(chan string, sseChannelBuffer),
		puzzleID: puzzleID,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. It is safe to
// call more than once.
func (b *Broadcaster) Unsubscribe(sub *subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mu.Unlock()
}

// Publish encodes event as JSON and sends it to every subscriber of the
// puzzle. Subscribers with a full buffer miss the event.
func (b *Broadcaster) Publish(puzzleID string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("sse: encode event for %s: %v", puzzleID, err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if sub.puzzleID != puzzleID {
			continue
		}
		select {
		case sub.ch <- string(data):
		default:
		}
	}
}

// SubscriberCount returns the number of subscribers following a puzzle.
func (b *Broadcaster) SubscriberCount(puzzleID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for sub := range b.subs {
		if sub.puzzleID == puzzleID {
			n++
		}
	}
	return n
}

// ServeSSE streams a puzzle's events until the request is cancelled.
// initial, if non-nil, is sent first.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, puzzleID string, initial any, onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := b.Subscribe(puzzleID)
	defer func() {
		b.Unsubscribe(sub)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()

	if initial != nil {
		if data, err := json.Marshal(initial); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
