package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterValidatesInvariant(t *testing.T) {
	_, err := NewCounter(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = NewCounter(3, 4)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = NewCounter(3, -1)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	c, err := NewCounter(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, c.Get())
}

func TestDefaultCounterIsSharedAndSeeded(t *testing.T) {
	a := Default()
	b := Default()
	require.Same(t, a, b)
	assert.Equal(t, Snapshot{Total: DefaultTotal, Answered: DefaultAnswered}, a.Get())
}

func TestSetAnsweredBeyondTotalLeavesStateUnchanged(t *testing.T) {
	c, err := NewCounter(10, 3)
	require.NoError(t, err)

	err = c.SetAnswered(11)
	assert.ErrorIs(t, err, ErrInvalidProgress)
	assert.Equal(t, Snapshot{Total: 10, Answered: 3}, c.Get())

	assert.ErrorIs(t, c.SetAnswered(-1), ErrInvalidProgress)
	assert.Equal(t, Snapshot{Total: 10, Answered: 3}, c.Get())
}

func TestSetTotalBelowAnsweredFails(t *testing.T) {
	c, err := NewCounter(10, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetTotal(2), ErrInvalidProgress)
	assert.Equal(t, Snapshot{Total: 10, Answered: 3}, c.Get())

	require.NoError(t, c.SetTotal(3))
	assert.Equal(t, Snapshot{Total: 3, Answered: 3}, c.Get())
}

func TestSetReplacesBothFieldsAtOnce(t *testing.T) {
	c, err := NewCounter(2, 1)
	require.NoError(t, err)

	// answered=5 alone would break the invariant against total=2
	require.NoError(t, c.Set(Snapshot{Total: 8, Answered: 5}))
	assert.Equal(t, Snapshot{Total: 8, Answered: 5}, c.Get())

	assert.ErrorIs(t, c.Set(Snapshot{Total: 1, Answered: 2}), ErrInvalidProgress)
	assert.Equal(t, Snapshot{Total: 8, Answered: 5}, c.Get())
}

func TestCounterLogsRejectedUpdates(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCounter(1, 0, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	require.Error(t, c.SetAnswered(2))
	assert.Contains(t, buf.String(), "progress update rejected")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestCounterConcurrentUpdatesKeepInvariant(t *testing.T) {
	c, err := NewCounter(50, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = c.SetAnswered(n * 3)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = c.SetTotal(30 + n)
			s := c.Get()
			assert.True(t, s.Answered >= 0 && s.Answered <= s.Total, "torn state %+v", s)
		}(i)
	}
	wg.Wait()

	s := c.Get()
	assert.True(t, s.Answered >= 0 && s.Answered <= s.Total)
}
