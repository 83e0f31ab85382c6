// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package buffer

import (
	"sync"

	"github.com/movingrate/movingrate/utils"
)

// Returns a new unbounded blocking deque with the given initial size.
// Note that the returned deque is always empty -- [initSize] is just
// a hint to prevent unnecessary resizing.
func NewUnboundedBlockingDeque[T any](initSize int) *UnboundedBlockingDeque[T] {
	q := &UnboundedBlockingDeque[T]{
		deque: NewUnboundedDeque[T](initSize),
	}
	q.cond = sync.NewCond(&q.lock)
	return q
}

// UnboundedBlockingDeque is a thread-safe FIFO with unbounded growth. Pops
// block until an element is available or the deque is closed.
type UnboundedBlockingDeque[T any] struct {
	lock   sync.Mutex
	cond   *sync.Cond
	closed bool
	deque  Deque[T]
}

// PushRight appends [elt] and wakes one waiting consumer.
// If the deque is closed returns false.
func (q *UnboundedBlockingDeque[T]) PushRight(elt T) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.closed {
		return false
	}

	q.deque.PushRight(elt)
	q.cond.Signal()
	return true
}

// PopLeft blocks until the deque is non-empty and returns its oldest element.
// If the deque is closed returns false.
func (q *UnboundedBlockingDeque[T]) PopLeft() (T, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for {
		if q.closed {
			return utils.Zero[T](), false
		}
		if q.deque.Len() != 0 {
			return q.deque.PopLeft()
		}
		q.cond.Wait()
	}
}

// Close empties the deque and wakes every blocked consumer. Subsequent
// pushes and pops fail.
func (q *UnboundedBlockingDeque[T]) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.closed {
		return
	}

	q.deque = nil
	q.closed = true
	q.cond.Broadcast()
}
