package workspace

import "sync"

// indexQueue is an unbounded FIFO of documents awaiting background indexing.
// Enqueueing never blocks the caller; pop blocks until an item arrives or the
// queue is closed.
type indexQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []*Document
	closed bool
}

func newIndexQueue() *indexQueue {
	q := &indexQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *indexQueue) push(d *Document) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.items = append(q.items, d)
	q.cond.Signal()
}

// pop returns the next document in FIFO order. The second return is false
// once the queue has been closed and drained.
func (q *indexQueue) pop() (*Document, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}

	d := q.items[0]
	q.items = q.items[1:]
	return d, true
}

func (q *indexQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}
