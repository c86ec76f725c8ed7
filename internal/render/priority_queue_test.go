package render

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
)

func queueTask(page int) *Task {
	return newTask(context.Background(), layout.Screen{
		Page:   page,
		Region: document.Region{Width: 1, Height: 1},
		Scale:  1,
	})
}

func mustPush(t *testing.T, pq *PriorityQueue, task *Task, priority int) {
	t.Helper()
	require.NoError(t, pq.Push(task, priority))
}

// popNow pops without blocking; nil when the queue is empty.
func popNow(pq *PriorityQueue) *Task {
	done := make(chan struct{})
	close(done)
	return pq.Pop(done)
}

func TestPriorityQueue_BasicOrdering(t *testing.T) {
	pq := NewPriorityQueue()

	low, normal, high := queueTask(0), queueTask(1), queueTask(2)
	mustPush(t, pq, low, PriorityLow)
	mustPush(t, pq, normal, PriorityNormal)
	mustPush(t, pq, high, PriorityHigh)

	assert.Same(t, high, popNow(pq))
	assert.Same(t, normal, popNow(pq))
	assert.Same(t, low, popNow(pq))
	assert.Nil(t, popNow(pq))
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueue_FIFOWithinPriority(t *testing.T) {
	pq := NewPriorityQueue()

	tasks := []*Task{queueTask(0), queueTask(1), queueTask(2)}
	for _, task := range tasks {
		mustPush(t, pq, task, PriorityNormal)
	}
	for _, want := range tasks {
		assert.Same(t, want, popNow(pq))
	}
}

func TestPriorityQueue_Promotion(t *testing.T) {
	pq := NewPriorityQueue()

	first, later := queueTask(0), queueTask(1)
	mustPush(t, pq, first, PriorityLow)
	mustPush(t, pq, later, PriorityLow)
	mustPush(t, pq, later, PriorityHigh)

	assert.Equal(t, PriorityQueueStats{Total: 2, High: 1, Low: 1}, pq.Stats())

	assert.Same(t, later, popNow(pq))
	assert.Equal(t, PriorityQueueStats{Total: 1, Low: 1}, pq.Stats())
	assert.Same(t, first, popNow(pq))
	assert.Nil(t, popNow(pq), "superseded entry is skipped")
}

func TestPriorityQueue_RepeatPushCountsOnce(t *testing.T) {
	pq := NewPriorityQueue()

	task := queueTask(0)
	for i := 0; i < 5; i++ {
		mustPush(t, pq, task, PriorityNormal)
	}
	mustPush(t, pq, task, PriorityLow)
	assert.Equal(t, 1, pq.Len())
	assert.Equal(t, PriorityQueueStats{Total: 1, Normal: 1}, pq.Stats())

	mustPush(t, pq, task, PriorityHigh)
	assert.Equal(t, 1, pq.Len())
	assert.Equal(t, 0, pq.Prune(), "superseded entries are not distinct tasks")
	assert.Equal(t, PriorityQueueStats{Total: 1, High: 1}, pq.Stats())

	assert.Same(t, task, popNow(pq))
	assert.Nil(t, popNow(pq))
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueue_Prune(t *testing.T) {
	pq := NewPriorityQueue()

	keep, cancelled, claimed := queueTask(0), queueTask(1), queueTask(2)
	mustPush(t, pq, keep, PriorityLow)
	mustPush(t, pq, cancelled, PriorityHigh)
	mustPush(t, pq, claimed, PriorityNormal)

	cancelled.Cancel()
	claimed.claimed.Store(true)

	assert.Equal(t, 2, pq.Prune())
	assert.Equal(t, 1, pq.Len())
	assert.Same(t, keep, popNow(pq))
}

func TestPriorityQueue_PopBlocksUntilPush(t *testing.T) {
	pq := NewPriorityQueue()
	done := make(chan struct{})
	defer close(done)

	task := queueTask(0)
	got := make(chan *Task, 1)
	go func() { got <- pq.Pop(done) }()

	time.Sleep(10 * time.Millisecond)
	mustPush(t, pq, task, PriorityNormal)

	select {
	case popped := <-got:
		assert.Same(t, task, popped)
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after Push")
	}
}

func TestPriorityQueue_PopReturnsNilWhenDone(t *testing.T) {
	pq := NewPriorityQueue()
	done := make(chan struct{})
	close(done)
	assert.Nil(t, pq.Pop(done))
}

func TestPriorityQueue_ConcurrentConsumers(t *testing.T) {
	pq := NewPriorityQueue()
	done := make(chan struct{})

	const n = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[*Task]bool)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task := pq.Pop(done)
				if task == nil {
					return
				}
				mu.Lock()
				seen[task] = true
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < n; i++ {
		mustPush(t, pq, queueTask(i), PriorityForDistance(i%3))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == n
	}, 2*time.Second, 5*time.Millisecond)
	close(done)
	wg.Wait()
}

func TestPriorityForDistance(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityForDistance(0))
	assert.Equal(t, PriorityNormal, PriorityForDistance(1))
	assert.Equal(t, PriorityNormal, PriorityForDistance(-1))
	assert.Equal(t, PriorityLow, PriorityForDistance(2))
}
