// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package buffer

// Deque is a FIFO queue backed by a double-ended buffer.
type Deque[T any] interface {
	// Place an element at the rightmost end of the deque.
	PushRight(T)
	// Remove and return the leftmost element of the deque.
	// Returns false if the deque is empty.
	PopLeft() (T, bool)
	// Return the leftmost element of the deque without removing it.
	// Returns false if the deque is empty.
	PeekLeft() (T, bool)
	// Returns the number of elements in the deque.
	Len() int
	// Returns the elements of the deque, from left to right.
	List() []T
}
