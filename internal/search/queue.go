package search

import "github.com/aretw0/pathrace/pkg/domain"

// queueItem is one open-set entry. The same coordinate may be pushed more
// than once; stale entries are discarded when popped.
type queueItem struct {
	node     domain.Coordinate
	g        float64
	priority float64
	seq      uint64
}

// openQueue is a container/heap min-queue ordered by (priority, g, seq).
// seq is the push counter, so equal entries leave in FIFO order.
type openQueue []*queueItem

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.seq < b.seq
}

func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openQueue) Push(x any) {
	*q = append(*q, x.(*queueItem))
}

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
