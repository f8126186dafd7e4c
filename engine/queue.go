package engine

import "sync"

// Queue is an unbounded FIFO handing emissions from the input dispatch
// thread to the engine thread. Enqueue never blocks; delivery order is
// exactly enqueue order and every emission is delivered exactly once.
// Emissions are never coalesced: axis and button sequences are
// order-sensitive.
type Queue struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	items    []Emission
	closed   bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends an emission. It never blocks and is a no-op after Close.
func (q *Queue) Enqueue(e Emission) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, e)
	q.nonEmpty.Signal()
}

// Len returns the number of emissions waiting for delivery.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain delivers every emission currently queued to the intake and returns
// how many were delivered. Engines that pump input once per frame call
// Drain from their own thread.
func (q *Queue) Drain(in Intake) int {
	q.mu.Lock()
	pending := q.items
	q.items = nil
	q.mu.Unlock()

	for _, e := range pending {
		e.Deliver(in)
	}
	return len(pending)
}

// Dispatch delivers emissions to the intake as they arrive, blocking until
// Close is called. It must run on the engine thread.
func (q *Queue) Dispatch(in Intake) {
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.closed {
			q.nonEmpty.Wait()
		}
		if len(q.items) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		pending := q.items
		q.items = nil
		q.mu.Unlock()

		for _, e := range pending {
			e.Deliver(in)
		}
	}
}

// Close stops Dispatch after all previously enqueued emissions have been
// delivered. Emissions enqueued after Close are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.nonEmpty.Broadcast()
}
