// Package alert owns the on-screen alert surfaces. Every surface is created,
// updated and disposed on the goroutine running Dispatcher.Run.
package alert

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Phase is a stage in a surface's lifecycle.
type Phase int

// Surface phases. A surface only moves forward.
const (
	PhaseEntering Phase = iota
	PhaseIdle
	PhaseExiting
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseIdle:
		return "idle"
	case PhaseExiting:
		return "exiting"
	case PhaseDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalidTransition is returned for a lifecycle step that is not allowed.
var ErrInvalidTransition = errors.New("invalid surface transition")

var allowed = map[Phase][]Phase{
	PhaseEntering: {PhaseIdle, PhaseDisposed},
	PhaseIdle:     {PhaseExiting},
	PhaseExiting:  {PhaseDisposed},
}

// View is what a surface displays.
type View struct {
	Title   string
	Count   int // count reported by the pinger, display only
	Pending int
	Total   int
	Source  string
	At      time.Time
}

// Message renders the body text of the alert.
func (v View) Message() string {
	items := "item"
	if v.Count != 1 {
		items = "items"
	}
	return fmt.Sprintf("%d new %s from %s\nToday: %d  Pending: %d  (%s)",
		v.Count, items, v.Source, v.Total, v.Pending, v.At.Format("15:04:05"))
}

// Surface is one alert window and its lifecycle.
type Surface struct {
	id        string
	view      View
	phase     Phase
	createdAt time.Time
	touchedAt time.Time
}

func newSurface(v View, now time.Time) *Surface {
	return &Surface{
		id:        uuid.NewString(),
		view:      v,
		phase:     PhaseEntering,
		createdAt: now,
		touchedAt: now,
	}
}

// ID identifies the surface to presenters.
func (s *Surface) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Surface) Phase() Phase { return s.phase }

// View returns the content currently displayed.
func (s *Surface) View() View { return s.view }

func (s *Surface) transition(to Phase) error {
	for _, next := range allowed[s.phase] {
		if next == to {
			s.phase = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, to)
}

// refresh replaces the content of an idle surface and restarts its timeout.
func (s *Surface) refresh(v View, now time.Time) error {
	if s.phase != PhaseIdle {
		return fmt.Errorf("%w: refresh while %s", ErrInvalidTransition, s.phase)
	}
	s.view = v
	s.touchedAt = now
	return nil
}

// expiresAt returns when an idle surface should dismiss itself.
func (s *Surface) expiresAt(timeout time.Duration) time.Time {
	return s.touchedAt.Add(timeout)
}
