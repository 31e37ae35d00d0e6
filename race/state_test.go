// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFresh(t *testing.T) {
	s := NewState[string]()
	assert.False(t, s.Done())
	_, _, ok := s.Winner()
	assert.False(t, ok)
}

func TestStateClaim(t *testing.T) {
	s := NewState[string]()
	require.True(t, s.TryClaim(3, "203.0.113.7"))
	assert.True(t, s.Done())
	value, winnerID, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, "203.0.113.7", value)
	assert.Equal(t, 3, winnerID)

	// A later claim must lose and must not disturb the stored winner.
	assert.False(t, s.TryClaim(4, "198.51.100.1"))
	value, winnerID, ok = s.Winner()
	require.True(t, ok)
	assert.Equal(t, "203.0.113.7", value)
	assert.Equal(t, 3, winnerID)
}

// TestStateAtMostOneWinner drives many goroutines through TryClaim at
// the same moment and verifies exactly one claim succeeds, and that
// the stored winner is the candidate from that one successful call.
func TestStateAtMostOneWinner(t *testing.T) {
	const n = 100
	for round := 0; round < 20; round++ {
		s := NewState[string]()
		start := make(chan struct{})
		var wg sync.WaitGroup
		winners := make([]bool, n)

		wg.Add(n)
		for i := 0; i < n; i++ {
			go func(id int) {
				defer wg.Done()
				<-start
				winners[id] = s.TryClaim(id+1, fmt.Sprintf("10.0.0.%d", id+1))
			}(i)
		}
		close(start)
		wg.Wait()

		won := -1
		for i, w := range winners {
			if w {
				require.Equal(t, -1, won, "two winners: %d and %d", won, i)
				won = i
			}
		}
		require.NotEqual(t, -1, won, "no winner")

		value, winnerID, ok := s.Winner()
		require.True(t, ok)
		assert.Equal(t, won+1, winnerID)
		assert.Equal(t, fmt.Sprintf("10.0.0.%d", won+1), value)
	}
}
