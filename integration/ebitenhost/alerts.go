// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenhost

import "sync"

// Alerts queues messages for the modal overlay. It implements app.Notifier.
// The zero value is ready to use.
type Alerts struct {
	mu    sync.Mutex
	queue []string
}

// Alert queues msg.
func (q *Alerts) Alert(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, msg)
}

// Current returns the message on screen, or "" when there is none.
func (q *Alerts) Current() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return ""
	}
	return q.queue[0]
}

// Dismiss removes the message on screen.
func (q *Alerts) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) > 0 {
		q.queue = q.queue[1:]
	}
}
