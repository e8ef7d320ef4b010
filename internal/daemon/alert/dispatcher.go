package alert

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/watchfire-io/pingwatch/internal/metrics"
	"github.com/watchfire-io/pingwatch/internal/models"
)

// DefaultQueueSize bounds the channel between listener goroutines and the
// dispatcher loop.
const DefaultQueueSize = 32

// maxPending bounds views waiting behind the active surface in queue mode.
const maxPending = 16

const soundTimeout = 5 * time.Second

// StateReader is the slice of monitor state the dispatcher reads.
type StateReader interface {
	Snapshot() models.Snapshot
	SoundEnabled() bool
}

// EventKind identifies what a posted event asks the loop to do.
type EventKind int

// Event kinds.
const (
	EventTrigger EventKind = iota
	EventDismiss
	EventReconfigure
)

// Event is a request posted from any goroutine to the dispatcher loop.
type Event struct {
	Kind   EventKind
	Config Config // EventReconfigure only
}

// Config controls presentation. It can be replaced at runtime.
type Config struct {
	Policy    string        // models.PolicyCoalesce or models.PolicyQueue
	Timeout   time.Duration // 0 = stay until dismissed
	Title     string
	SoundFile string
}

// ConfigFromSettings derives the dispatcher config from user settings.
func ConfigFromSettings(s *models.Settings) Config {
	return Config{
		Policy:    s.Alert.Policy,
		Timeout:   time.Duration(s.Alert.TimeoutSeconds) * time.Second,
		Title:     s.Alert.Title,
		SoundFile: s.Sound.File,
	}
}

// Dispatcher turns posted events into alert surfaces. Post, Dismiss and
// RequestQuit may be called from any goroutine; surfaces are touched only by
// the goroutine in Run.
type Dispatcher struct {
	events   chan Event
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	active   atomic.Bool

	state     StateReader
	presenter Presenter
	sound     SoundPlayer
	metrics   *metrics.Metrics
	onQuit    func()
	now       func() time.Time

	// Owned by Run.
	cfg     Config
	current *Surface
	pending []View
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithConfig sets the initial presentation config.
func WithConfig(cfg Config) DispatcherOption {
	return func(d *Dispatcher) { d.cfg = cfg }
}

// WithSound sets the sound player.
func WithSound(p SoundPlayer) DispatcherOption {
	return func(d *Dispatcher) { d.sound = p }
}

// WithMetrics records shown and dropped alerts.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithOnQuit runs fn on the loop goroutine after teardown.
func WithOnQuit(fn func()) DispatcherOption {
	return func(d *Dispatcher) { d.onQuit = fn }
}

// WithQueueSize overrides the event channel capacity.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) { d.events = make(chan Event, n) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a dispatcher. Nothing is shown until Run is called.
func NewDispatcher(state StateReader, presenter Presenter, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		events:    make(chan Event, DefaultQueueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		state:     state,
		presenter: presenter,
		sound:     SilentSound{},
		now:       time.Now,
		cfg: Config{
			Policy: models.PolicyCoalesce,
			Title:  "Pingwatch alert",
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.presenter == nil {
		d.presenter = LogPresenter{}
	}
	return d
}

// Post enqueues an event without blocking. It reports false when the queue
// is full or the loop has quit; the event is then dropped.
func (d *Dispatcher) Post(ev Event) bool {
	select {
	case <-d.quit:
		return false
	default:
	}

	select {
	case d.events <- ev:
		return true
	default:
		log.Printf("[alert] event queue full, dropping event kind=%d", ev.Kind)
		d.metrics.AlertDropped("queue_full")
		return false
	}
}

// Trigger asks the loop to present the latest ping.
func (d *Dispatcher) Trigger() bool {
	return d.Post(Event{Kind: EventTrigger})
}

// Dismiss asks the loop to close the active surface.
func (d *Dispatcher) Dismiss() bool {
	return d.Post(Event{Kind: EventDismiss})
}

// Reconfigure replaces the presentation config.
func (d *Dispatcher) Reconfigure(cfg Config) bool {
	return d.Post(Event{Kind: EventReconfigure, Config: cfg})
}

// RequestQuit asks the loop to tear down. Safe to call more than once.
func (d *Dispatcher) RequestQuit() {
	d.quitOnce.Do(func() { close(d.quit) })
}

// Done is closed when Run has returned.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Active reports whether a surface is on screen.
func (d *Dispatcher) Active() bool {
	return d.active.Load()
}

// Run is the UI loop. It returns nil after RequestQuit, or ctx.Err() when
// ctx is cancelled. Run must be called at most once.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)

	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()
	var idleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			d.teardown()
			return ctx.Err()
		case <-d.quit:
			d.teardown()
			return nil
		case ev := <-d.events:
			d.handle(ev)
		case <-idleC:
			d.dismissCurrent("timeout")
		}
		idleC = d.rearm(idle)
	}
}

func (d *Dispatcher) handle(ev Event) {
	switch ev.Kind {
	case EventTrigger:
		d.handleTrigger()
	case EventDismiss:
		d.dismissCurrent("dismissed")
	case EventReconfigure:
		d.cfg = ev.Config
		log.Printf("[alert] config updated: policy=%s timeout=%s", d.cfg.Policy, d.cfg.Timeout)
	default:
		log.Printf("[alert] unknown event kind %d", ev.Kind)
	}
}

func (d *Dispatcher) handleTrigger() {
	snap := d.state.Snapshot()
	view := View{
		Title:   d.cfg.Title,
		Count:   snap.LastTriggerCount,
		Pending: snap.PendingCount,
		Total:   snap.TotalCount,
		Source:  snap.LastTriggerSource,
		At:      d.now(),
	}

	if d.state.SoundEnabled() {
		d.playSound()
	}

	switch {
	case d.current == nil && len(d.pending) == 0:
		d.show(view)
	case d.current == nil:
		// Older views still waiting go first.
		d.enqueue(view)
		d.showNext()
	case d.cfg.Policy == models.PolicyQueue:
		d.enqueue(view)
	default:
		d.update(view)
	}
}

func (d *Dispatcher) enqueue(view View) {
	if len(d.pending) >= maxPending {
		d.pending = d.pending[1:]
		d.metrics.AlertDropped("backlog_full")
	}
	d.pending = append(d.pending, view)
}

// showNext presents waiting views oldest first until one is on screen or
// the backlog is empty.
func (d *Dispatcher) showNext() {
	for d.current == nil && len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		d.show(next)
	}
}

// present runs a presenter call, turning a panic into an error so a broken
// display backend cannot take the loop down.
func present(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("presenter panic: %v", r)
		}
	}()
	return call()
}

func (d *Dispatcher) show(view View) bool {
	s := newSurface(view, d.now())
	if err := present(func() error { return d.presenter.Show(s.ID(), view) }); err != nil {
		log.Printf("[alert] failed to present alert: %v", err)
		_ = s.transition(PhaseDisposed)
		d.metrics.AlertDropped("presenter")
		return false
	}
	_ = s.transition(PhaseIdle)
	d.current = s
	d.active.Store(true)
	d.metrics.AlertShown()
	return true
}

func (d *Dispatcher) update(view View) {
	if err := d.current.refresh(view, d.now()); err != nil {
		log.Printf("[alert] %v", err)
		return
	}
	id := d.current.ID()
	if err := present(func() error { return d.presenter.Update(id, view) }); err != nil {
		log.Printf("[alert] failed to update alert: %v", err)
		d.metrics.AlertDropped("presenter")
		return
	}
	d.metrics.AlertShown()
}

func (d *Dispatcher) dismissCurrent(reason string) {
	if d.current == nil {
		return
	}
	s := d.current
	d.current = nil
	d.active.Store(false)

	if err := s.transition(PhaseExiting); err != nil {
		log.Printf("[alert] %v", err)
	}
	if err := present(func() error { return d.presenter.Close(s.ID()) }); err != nil {
		log.Printf("[alert] failed to close alert: %v", err)
	}
	if err := s.transition(PhaseDisposed); err != nil {
		log.Printf("[alert] %v", err)
	}
	log.Printf("[alert] surface %s closed (%s)", s.ID(), reason)

	d.showNext()
}

func (d *Dispatcher) teardown() {
	d.pending = nil
	d.dismissCurrent("shutdown")
	if d.onQuit != nil {
		d.onQuit()
	}
}

func (d *Dispatcher) rearm(t *time.Timer) <-chan time.Time {
	t.Stop()
	if d.current == nil || d.cfg.Timeout <= 0 {
		return nil
	}
	wait := d.current.expiresAt(d.cfg.Timeout).Sub(d.now())
	if wait < 0 {
		wait = 0
	}
	t.Reset(wait)
	return t.C
}

func (d *Dispatcher) playSound() {
	player, file := d.sound, d.cfg.SoundFile
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), soundTimeout)
		defer cancel()
		if err := player.Play(ctx, file); err != nil {
			log.Printf("[alert] sound failed: %v", err)
		}
	}()
}
