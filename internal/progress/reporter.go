package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Reporter is implemented by anything that can describe and draw progress.
type Reporter interface {
	// ProgressText is derived from live state on every call.
	ProgressText() string
	// RenderProgressBar writes the bar, a line break and the text to w.
	RenderProgressBar(w io.Writer) error
}

// Glyphs are the runes used for answered and unanswered slots.
type Glyphs struct {
	Filled string
	Empty  string
}

var DefaultGlyphs = Glyphs{Filled: "▓", Empty: "▒"}

// Text formats s as "<answered> of <total> answered".
func Text(s Snapshot) string {
	return fmt.Sprintf("%d of %d answered", s.Answered, s.Total)
}

// Bar draws s without the trailing text line.
func Bar(s Snapshot, g Glyphs) string {
	return strings.Repeat(g.Filled, s.Answered) + strings.Repeat(g.Empty, s.Total-s.Answered)
}

// Tracker reports on a single Counter.
type Tracker struct {
	id      uuid.UUID
	counter *Counter
	glyphs  Glyphs
	logger  zerolog.Logger
}

var _ Reporter = (*Tracker)(nil)

type TrackerOption func(*Tracker)

func WithGlyphs(g Glyphs) TrackerOption {
	return func(t *Tracker) {
		if g.Filled != "" {
			t.glyphs.Filled = g.Filled
		}
		if g.Empty != "" {
			t.glyphs.Empty = g.Empty
		}
	}
}

func WithTrackerLogger(logger zerolog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithID pins the tracker identity instead of generating one.
func WithID(id uuid.UUID) TrackerOption {
	return func(t *Tracker) {
		t.id = id
	}
}

// NewTracker reports on counter, or on Default() when counter is nil.
func NewTracker(counter *Counter, opts ...TrackerOption) *Tracker {
	if counter == nil {
		counter = Default()
	}
	t := &Tracker{
		id:      uuid.New(),
		counter: counter,
		glyphs:  DefaultGlyphs,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With().Str("tracker", t.id.String()).Logger()
	return t
}

func (t *Tracker) ID() uuid.UUID      { return t.id }
func (t *Tracker) Counter() *Counter  { return t.counter }
func (t *Tracker) Snapshot() Snapshot { return t.counter.Get() }

func (t *Tracker) ProgressText() string {
	return Text(t.counter.Get())
}

// Render returns exactly what RenderProgressBar writes.
func (t *Tracker) Render() string {
	s := t.counter.Get()
	return Bar(s, t.glyphs) + "\n" + Text(s) + "\n"
}

func (t *Tracker) RenderProgressBar(w io.Writer) error {
	out := t.Render()
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("render progress bar: %w", err)
	}
	t.logger.Debug().Msg("progress bar rendered")
	return nil
}
