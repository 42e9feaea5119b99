package pilot

import (
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/flapsim/internal/flappy"
)

// Recorder captures the ticks on which a flap was requested.
type Recorder struct {
	seed  int64
	ticks []uint64
	seen  *intmap.Map[uint64, struct{}]
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: intmap.New[uint64, struct{}](64)}
}

// Begin starts a new recording for a session seeded with seed.
func (r *Recorder) Begin(seed int64) {
	r.seed = seed
	r.ticks = r.ticks[:0]
	r.seen.Clear()
}

// Record notes a flap on tick. Duplicates are ignored.
func (r *Recorder) Record(tick uint64) {
	if _, ok := r.seen.Get(tick); ok {
		return
	}
	r.seen.Put(tick, struct{}{})
	r.ticks = append(r.ticks, tick)
}

// Seed returns the seed of the current recording.
func (r *Recorder) Seed() int64 {
	return r.seed
}

// Ticks returns a sorted copy of the recorded flap ticks.
func (r *Recorder) Ticks() []uint64 {
	out := slices.Clone(r.ticks)
	slices.Sort(out)
	return out
}

// Len returns the number of recorded flaps.
func (r *Recorder) Len() int {
	return r.seen.Len()
}

// Replay flaps on exactly the recorded ticks. Combined with the recorded
// seed it reproduces the recorded session.
type Replay struct {
	ticks *intmap.Map[uint64, struct{}]
}

// NewReplay creates a replay pilot from recorded flap ticks.
func NewReplay(ticks []uint64) *Replay {
	m := intmap.New[uint64, struct{}](len(ticks))
	for _, t := range ticks {
		m.Put(t, struct{}{})
	}
	return &Replay{ticks: m}
}

// ID returns the pilot's registry key.
func (r *Replay) ID() string {
	return "replay"
}

// Title returns the display name.
func (r *Replay) Title() string {
	return "Replay"
}

// Reset is a no-op; the recorded ticks are absolute.
func (r *Replay) Reset(int64) {}

// Decide flaps if the coming tick was recorded.
func (r *Replay) Decide(f flappy.Frame) bool {
	_, ok := r.ticks.Get(f.Tick + 1)
	return ok
}
