package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstSeenAcceptsNewID(t *testing.T) {
	d := NewDeduper(4)

	assert.True(t, d.FirstSeen(100))
	assert.True(t, d.FirstSeen(101))
}

func TestFirstSeenRejectsRepeatedID(t *testing.T) {
	d := NewDeduper(4)

	assert.True(t, d.FirstSeen(100))
	assert.False(t, d.FirstSeen(100))
	assert.False(t, d.FirstSeen(100))
}

func TestFirstSeenEvictsOldestWhenFull(t *testing.T) {
	d := NewDeduper(3)

	assert.True(t, d.FirstSeen(1))
	assert.True(t, d.FirstSeen(2))
	assert.True(t, d.FirstSeen(3))
	assert.True(t, d.FirstSeen(4))

	// 1 fell out of the window, newer IDs are still remembered
	assert.True(t, d.FirstSeen(1))
	assert.False(t, d.FirstSeen(3))
	assert.False(t, d.FirstSeen(4))
	assert.Equal(t, 3, d.Len())
}

func TestFirstSeenDefaultCapacity(t *testing.T) {
	d := NewDeduper(0)

	for i := int64(1); i <= DedupCapacity; i++ {
		assert.True(t, d.FirstSeen(i))
	}

	assert.Equal(t, DedupCapacity, d.Len())
	assert.False(t, d.FirstSeen(1))
}

func TestFirstSeenConcurrentSingleWinner(t *testing.T) {
	d := NewDeduper(16)

	var wg sync.WaitGroup
	results := make(chan bool, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- d.FirstSeen(42)
		}()
	}

	wg.Wait()
	close(results)

	wins := 0
	for first := range results {
		if first {
			wins++
		}
	}

	assert.Equal(t, 1, wins)
}
