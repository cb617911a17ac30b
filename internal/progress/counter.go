package progress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Defaults for the process-wide counter.
const (
	DefaultTotal    = 10
	DefaultAnswered = 3
)

var ErrInvalidProgress = errors.New("invalid progress")

// Snapshot is a point-in-time copy of a counter.
type Snapshot struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
}

func (s Snapshot) validate() error {
	if s.Total < 0 {
		return fmt.Errorf("%w: total %d is negative", ErrInvalidProgress, s.Total)
	}
	if s.Answered < 0 || s.Answered > s.Total {
		return fmt.Errorf("%w: answered %d outside [0, %d]", ErrInvalidProgress, s.Answered, s.Total)
	}
	return nil
}

// Counter tracks how many of a fixed number of questions are answered.
// All writes go through SetTotal/SetAnswered, which keep 0 <= answered <= total.
type Counter struct {
	mu     sync.RWMutex
	state  Snapshot
	logger zerolog.Logger
}

type CounterOption func(*Counter)

// WithLogger makes the counter log accepted (debug) and rejected (warn) writes.
func WithLogger(logger zerolog.Logger) CounterOption {
	return func(c *Counter) {
		c.logger = logger
	}
}

func NewCounter(total, answered int, opts ...CounterOption) (*Counter, error) {
	state := Snapshot{Total: total, Answered: answered}
	if err := state.validate(); err != nil {
		return nil, err
	}
	c := &Counter{state: state, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCounter *Counter
)

// Default returns the process-wide counter, created on first use with
// DefaultTotal and DefaultAnswered.
func Default() *Counter {
	defaultOnce.Do(func() {
		defaultCounter = &Counter{
			state:  Snapshot{Total: DefaultTotal, Answered: DefaultAnswered},
			logger: zerolog.Nop(),
		}
	})
	return defaultCounter
}

func (c *Counter) Get() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetAnswered replaces the answered count. State is unchanged on error.
func (c *Counter) SetAnswered(n int) error {
	return c.update(func(s *Snapshot) { s.Answered = n })
}

// SetTotal replaces the total. State is unchanged on error.
func (c *Counter) SetTotal(n int) error {
	return c.update(func(s *Snapshot) { s.Total = n })
}

// Set replaces both fields in one step, for moves that would pass through
// an invalid state if done one field at a time.
func (c *Counter) Set(next Snapshot) error {
	return c.update(func(s *Snapshot) { *s = next })
}

func (c *Counter) update(mutate func(*Snapshot)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	mutate(&next)
	if err := next.validate(); err != nil {
		c.logger.Warn().Err(err).
			Int("total", c.state.Total).
			Int("answered", c.state.Answered).
			Msg("progress update rejected")
		return err
	}
	c.state = next
	c.logger.Debug().
		Int("total", next.Total).
		Int("answered", next.Answered).
		Msg("progress updated")
	return nil
}
