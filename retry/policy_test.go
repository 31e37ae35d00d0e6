// Copyright 2026 The cloudflare-ddns Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, 5, DefaultPolicy.MaxAttempts)
	assert.Equal(t, 15*time.Second, DefaultPolicy.AttemptTimeout)
	assert.Equal(t, 3*time.Second, DefaultPolicy.Delay(1))
	assert.Equal(t, 3*time.Second, DefaultPolicy.Delay(4))
}

func TestNormalize(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		p := Policy{}.Normalize()
		assert.Equal(t, DefaultMaxAttempts, p.MaxAttempts)
		assert.Equal(t, DefaultAttemptTimeout, p.AttemptTimeout)
		assert.Equal(t, DefaultRetryDelay, p.Delay(1))
	})
	t.Run("Negative", func(t *testing.T) {
		p := Policy{MaxAttempts: -1, AttemptTimeout: -time.Second}.Normalize()
		assert.Equal(t, DefaultMaxAttempts, p.MaxAttempts)
		assert.Equal(t, DefaultAttemptTimeout, p.AttemptTimeout)
	})
	t.Run("Set", func(t *testing.T) {
		in := Policy{
			MaxAttempts:    2,
			AttemptTimeout: time.Second,
			Backoff:        NewFixedWaiter(time.Millisecond),
		}
		p := in.Normalize()
		assert.Equal(t, in, p)
	})
	t.Run("ReceiverUnchanged", func(t *testing.T) {
		p := Policy{}
		_ = p.Normalize()
		assert.Zero(t, p.MaxAttempts)
		assert.Nil(t, p.Backoff)
	})
}

func TestDelayNilBackoff(t *testing.T) {
	p := Policy{MaxAttempts: 3}
	assert.Equal(t, DefaultRetryDelay, p.Delay(1))
}
