package render

import (
	"container/heap"
	"errors"
	"sync"
)

// ErrNilTask is returned when attempting to push a nil task.
var ErrNilTask = errors.New("cannot push nil task")

// Priority levels for render tasks.
// Higher values are processed first.
const (
	PriorityLow    = 0  // Prefetch beyond the adjacent screens
	PriorityNormal = 10 // Adjacent screens
	PriorityHigh   = 20 // The screen under the cursor

	PriorityPrefetch = PriorityLow
	PriorityCurrent  = PriorityHigh
)

// PriorityForDistance returns the priority for a screen dist steps away
// from the cursor.
func PriorityForDistance(dist int) int {
	switch {
	case dist == 0:
		return PriorityHigh
	case dist == 1 || dist == -1:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// PriorityQueue is a thread-safe priority queue for render tasks.
// Tasks with higher priority are dequeued first.
// When priorities are equal, tasks are processed in FIFO order.
type PriorityQueue struct {
	mu     sync.Mutex
	items  taskHeap
	queued map[*Task]int // best priority each distinct task is queued at
	seq    uint64        // Sequence number for FIFO ordering within same priority
	notify chan struct{} // Signaled when items are pushed
}

// NewPriorityQueue creates a new priority queue.
func NewPriorityQueue() *PriorityQueue {
	pq := &PriorityQueue{
		items:  make(taskHeap, 0),
		queued: make(map[*Task]int),
		notify: make(chan struct{}, 1),
	}
	heap.Init(&pq.items)
	return pq
}

// Push adds a task to the queue at priority. Pushing a queued task again
// at a higher priority promotes it and supersedes the earlier entry; at an
// equal or lower priority it is a no-op.
func (pq *PriorityQueue) Push(task *Task, priority int) error {
	if task == nil {
		return ErrNilTask
	}

	pq.mu.Lock()
	if p, ok := pq.queued[task]; ok && priority <= p {
		pq.mu.Unlock()
		return nil
	}
	pq.queued[task] = priority
	pq.seq++
	heap.Push(&pq.items, &taskItem{task: task, priority: priority, seq: pq.seq})
	pq.mu.Unlock()

	// Signal waiting consumers (non-blocking)
	select {
	case pq.notify <- struct{}{}:
	default:
	}
	return nil
}

// Pop removes and returns the highest priority task.
// Blocks until an item is available or the done channel is closed.
// Returns nil if done is closed while waiting.
func (pq *PriorityQueue) Pop(done <-chan struct{}) *Task {
	for {
		pq.mu.Lock()
		if task := pq.popLiveLocked(); task != nil {
			more := len(pq.queued) > 0
			pq.mu.Unlock()
			if more {
				// Wake the next waiting worker.
				select {
				case pq.notify <- struct{}{}:
				default:
				}
			}
			return task
		}
		pq.mu.Unlock()

		select {
		case <-done:
			return nil
		case <-pq.notify:
		}
	}
}

// popLiveLocked pops the highest entry that has not been superseded by a
// promotion. Caller holds mu.
func (pq *PriorityQueue) popLiveLocked() *Task {
	for pq.items.Len() > 0 {
		item := heap.Pop(&pq.items).(*taskItem)
		if !pq.live(item) {
			continue
		}
		delete(pq.queued, item.task)
		return item.task
	}
	return nil
}

func (pq *PriorityQueue) live(item *taskItem) bool {
	p, ok := pq.queued[item.task]
	return ok && p == item.priority
}

// Len returns the number of distinct tasks in the queue.
func (pq *PriorityQueue) Len() int {
	pq.mu.Lock()
	defer pq.mu.Unlock()
	return len(pq.queued)
}

// Prune drops queued tasks that have already resolved or been claimed by a
// worker, along with entries superseded by a promotion, and returns how
// many distinct tasks were removed.
func (pq *PriorityQueue) Prune() int {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	before := len(pq.queued)
	kept := pq.items[:0]
	for _, item := range pq.items {
		if !pq.live(item) {
			continue
		}
		if item.task.Resolved() || item.task.claimed.Load() {
			delete(pq.queued, item.task)
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(pq.items); i++ {
		pq.items[i] = nil
	}
	pq.items = kept
	heap.Init(&pq.items)
	return before - len(pq.queued)
}

// Stats returns queue statistics by priority level.
func (pq *PriorityQueue) Stats() PriorityQueueStats {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	stats := PriorityQueueStats{
		Total: len(pq.queued),
	}

	for _, item := range pq.items {
		if !pq.live(item) {
			continue
		}
		switch {
		case item.priority >= PriorityHigh:
			stats.High++
		case item.priority >= PriorityNormal:
			stats.Normal++
		default:
			stats.Low++
		}
	}

	return stats
}

// PriorityQueueStats reports queue depth by priority level.
type PriorityQueueStats struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Normal int `json:"normal"`
	Low    int `json:"low"`
}

// taskItem wraps a Task with its queue priority and a sequence number for
// heap ordering.
type taskItem struct {
	task     *Task
	priority int
	seq      uint64
}

// taskHeap implements heap.Interface for tasks.
// Higher priority items come first. Equal priorities use FIFO (lower seq first).
type taskHeap []*taskItem

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*taskItem))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	*h = old[0 : n-1]
	return item
}
