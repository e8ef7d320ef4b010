package alert

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/models"
)

type call struct {
	op   string
	id   string
	view View
}

type recordingPresenter struct {
	mu       sync.Mutex
	calls    []call
	failShow bool
	// failSource rejects views from one source only.
	failSource string
}

func (p *recordingPresenter) record(c call) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
}

func (p *recordingPresenter) Show(id string, v View) error {
	p.mu.Lock()
	fail := p.failShow || (p.failSource != "" && v.Source == p.failSource)
	p.mu.Unlock()
	if fail {
		return errors.New("no display")
	}
	p.record(call{"show", id, v})
	return nil
}

func (p *recordingPresenter) Update(id string, v View) error {
	p.record(call{"update", id, v})
	return nil
}

func (p *recordingPresenter) Close(id string) error {
	p.record(call{"close", id, View{}})
	return nil
}

func (p *recordingPresenter) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	for i, c := range p.calls {
		out[i] = c.op
	}
	return out
}

func (p *recordingPresenter) last() call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}

type fakeState struct {
	mu    sync.Mutex
	snap  models.Snapshot
	sound bool
}

func (f *fakeState) Snapshot() models.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeState) SoundEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sound
}

func (f *fakeState) ping(source string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.TotalCount++
	f.snap.PendingCount++
	f.snap.LastTriggerCount = count
	f.snap.LastTriggerSource = source
}

type countingSound struct {
	plays atomic.Int32
}

func (c *countingSound) Play(context.Context, string) error {
	c.plays.Add(1)
	return nil
}

func startDispatcher(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-d.Done()
	})
}

func waitOps(t *testing.T, p *recordingPresenter, want ...string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, p.ops())
	}, time.Second, 5*time.Millisecond, "presenter calls: %v", p.ops())
}

func TestDispatcherCoalescesIntoActiveSurface(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	d := NewDispatcher(state, presenter)
	startDispatcher(t, d)

	state.ping("erp", 3)
	require.True(t, d.Trigger())
	waitOps(t, presenter, "show")
	assert.Equal(t, View{Title: "Pingwatch alert", Count: 3, Pending: 1, Total: 1, Source: "erp", At: presenter.last().view.At}, presenter.last().view)
	assert.True(t, d.Active())

	state.ping("crm", 1)
	require.True(t, d.Trigger())
	waitOps(t, presenter, "show", "update")
	assert.Equal(t, 2, presenter.last().view.Total)
	assert.Equal(t, "crm", presenter.last().view.Source)

	require.True(t, d.Dismiss())
	waitOps(t, presenter, "show", "update", "close")
	assert.False(t, d.Active())
}

func TestDispatcherQueuePolicy(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	d := NewDispatcher(state, presenter, WithConfig(Config{Policy: models.PolicyQueue, Title: "t"}))
	startDispatcher(t, d)

	state.ping("erp", 1)
	d.Trigger()
	state.ping("crm", 1)
	d.Trigger()
	waitOps(t, presenter, "show")

	d.Dismiss()
	waitOps(t, presenter, "show", "close", "show")
	assert.Equal(t, "crm", presenter.last().view.Source)
	assert.True(t, d.Active())
}

func TestDispatcherDropsOnPresenterFailure(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{failShow: true}
	d := NewDispatcher(state, presenter)
	startDispatcher(t, d)

	state.ping("erp", 1)
	d.Trigger()
	d.Dismiss()

	// Dismiss is processed after the trigger, so the loop has seen both.
	require.Eventually(t, func() bool { return len(d.events) == 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, presenter.ops())
	assert.False(t, d.Active())

	presenter.mu.Lock()
	presenter.failShow = false
	presenter.mu.Unlock()

	d.Trigger()
	waitOps(t, presenter, "show")
}

// panickyPresenter blows up on the first Show, Update and Close it sees.
type panickyPresenter struct {
	recordingPresenter
	shows, updates, closes atomic.Int32
}

func (p *panickyPresenter) Show(id string, v View) error {
	if p.shows.Add(1) == 1 {
		panic("display gone")
	}
	return p.recordingPresenter.Show(id, v)
}

func (p *panickyPresenter) Update(id string, v View) error {
	if p.updates.Add(1) == 1 {
		panic("display gone")
	}
	return p.recordingPresenter.Update(id, v)
}

func (p *panickyPresenter) Close(id string) error {
	if p.closes.Add(1) == 1 {
		panic("display gone")
	}
	return p.recordingPresenter.Close(id)
}

func TestDispatcherSurvivesPresenterPanic(t *testing.T) {
	state := &fakeState{}
	presenter := &panickyPresenter{}
	d := NewDispatcher(state, presenter)
	startDispatcher(t, d)

	state.ping("erp", 1)
	require.True(t, d.Trigger())
	require.Eventually(t, func() bool { return presenter.shows.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, d.Active())

	// The loop is still alive: the next show succeeds.
	state.ping("erp", 1)
	require.True(t, d.Trigger())
	waitOps(t, &presenter.recordingPresenter, "show")
	assert.True(t, d.Active())

	// A panicking update leaves the surface in place.
	state.ping("crm", 1)
	require.True(t, d.Trigger())
	require.Eventually(t, func() bool { return presenter.updates.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, d.Active())

	// A panicking close still retires the surface.
	require.True(t, d.Dismiss())
	require.Eventually(t, func() bool { return !d.Active() }, time.Second, 5*time.Millisecond)

	state.ping("erp", 1)
	require.True(t, d.Trigger())
	waitOps(t, &presenter.recordingPresenter, "show", "show")
}

func TestDispatcherQueueSkipsFailedShow(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{failSource: "B"}
	d := NewDispatcher(state, presenter, WithConfig(Config{Policy: models.PolicyQueue, Title: "t"}))
	startDispatcher(t, d)

	for _, src := range []string{"A", "B", "C"} {
		state.ping(src, 1)
		require.True(t, d.Trigger())
	}
	waitOps(t, presenter, "show")
	assert.Equal(t, "A", presenter.last().view.Source)

	// B cannot be shown; C must not be stranded behind it.
	require.True(t, d.Dismiss())
	waitOps(t, presenter, "show", "close", "show")
	assert.Equal(t, "C", presenter.last().view.Source)
	assert.True(t, d.Active())

	state.ping("D", 1)
	require.True(t, d.Trigger())
	require.True(t, d.Dismiss())
	waitOps(t, presenter, "show", "close", "show", "close", "show")
	assert.Equal(t, "D", presenter.last().view.Source)
}

func TestDispatcherIdleTimeout(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	d := NewDispatcher(state, presenter, WithConfig(Config{Policy: models.PolicyCoalesce, Timeout: 30 * time.Millisecond}))
	startDispatcher(t, d)

	state.ping("erp", 1)
	d.Trigger()
	waitOps(t, presenter, "show", "close")
	assert.False(t, d.Active())
}

func TestDispatcherWaitsIndefinitelyWithoutTimeout(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	d := NewDispatcher(state, presenter)
	startDispatcher(t, d)

	d.Trigger()
	waitOps(t, presenter, "show")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"show"}, presenter.ops())
}

func TestDispatcherReconfigure(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	d := NewDispatcher(state, presenter)
	startDispatcher(t, d)

	d.Reconfigure(Config{Policy: models.PolicyCoalesce, Title: "New work", Timeout: 20 * time.Millisecond})
	d.Trigger()
	waitOps(t, presenter, "show", "close")
}

func TestDispatcherQuit(t *testing.T) {
	state := &fakeState{}
	presenter := &recordingPresenter{}
	var quitCalled atomic.Bool
	d := NewDispatcher(state, presenter, WithOnQuit(func() { quitCalled.Store(true) }))

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(context.Background()) }()

	d.Trigger()
	waitOps(t, presenter, "show")

	d.RequestQuit()
	d.RequestQuit()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after RequestQuit")
	}
	assert.True(t, quitCalled.Load())
	assert.Equal(t, []string{"show", "close"}, presenter.ops())
	assert.False(t, d.Trigger(), "posting after quit is refused")
}

func TestDispatcherPostNeverBlocks(t *testing.T) {
	d := NewDispatcher(&fakeState{}, &recordingPresenter{}, WithQueueSize(1))

	assert.True(t, d.Trigger())
	assert.False(t, d.Trigger())
}

func TestDispatcherPlaysSoundWhenEnabled(t *testing.T) {
	state := &fakeState{sound: true}
	sound := &countingSound{}
	d := NewDispatcher(state, &recordingPresenter{}, WithSound(sound))
	startDispatcher(t, d)

	d.Trigger()
	require.Eventually(t, func() bool { return sound.plays.Load() == 1 }, time.Second, 5*time.Millisecond)

	state.mu.Lock()
	state.sound = false
	state.mu.Unlock()
	d.Trigger()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), sound.plays.Load())
}

func TestMultiPresenter(t *testing.T) {
	ok := &recordingPresenter{}
	bad := &recordingPresenter{failShow: true}

	assert.NoError(t, MultiPresenter{ok, bad}.Show("a", View{}))
	assert.Error(t, MultiPresenter{bad, bad}.Show("a", View{}))
	assert.NoError(t, MultiPresenter{ok, bad}.Close("a"))
}
