package sim

import (
	"context"

	"github.com/charmbracelet/log"
)

// Driver steps through the frame schedule of a RenderState and feeds a
// Surface. It is not safe for concurrent use; hosts call Step from a single
// timer callback or loop.
type Driver struct {
	state     *RenderState
	surface   Surface
	metrics   []Metric
	observers []Observer
	logger    *log.Logger

	next    int
	started bool
	err     error
}

func New(state *RenderState, surface Surface) *Driver {
	return &Driver{
		state:     state,
		surface:   surface,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.Default(),
	}
}

func (d *Driver) AddMetric(m Metric)           { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer)       { d.observers = append(d.observers, o) }
func (d *Driver) SetLogger(logger *log.Logger) { d.logger = logger }

func (d *Driver) State() *RenderState { return d.state }

// Done reports whether the last frame has been delivered or the run failed.
func (d *Driver) Done() bool {
	return d.err != nil || d.next >= len(d.state.Times)
}

// Err returns the error that aborted the run, if any.
func (d *Driver) Err() error { return d.err }

// Start rewinds to the first frame and initializes the surface. Hosts that
// loop the animation call it again after Done.
func (d *Driver) Start() error {
	d.next = 0
	d.err = nil
	d.state.clear()
	for _, m := range d.metrics {
		m.Reset()
	}
	d.started = false
	if err := d.surface.Init(d.state.Bodies); err != nil {
		return err
	}
	d.started = true
	d.logger.Debug("driver started", "bodies", len(d.state.Bodies), "frames", len(d.state.Times))
	return nil
}

// Step computes and delivers the next frame. A failed frame aborts the run:
// nothing from it reaches the surface and later calls return the same
// error.
func (d *Driver) Step() (Frame, error) {
	if !d.started {
		return Frame{}, ErrNotStarted
	}
	if d.err != nil {
		return Frame{}, d.err
	}
	if d.next >= len(d.state.Times) {
		return Frame{}, ErrFinished
	}

	t := d.state.Times[d.next]
	f, err := Tick(d.state, t)
	if err != nil {
		d.err = &FrameError{Index: d.next, T: t, Wrapped: err}
		d.logger.Error("frame failed", "frame", d.next, "t", t, "err", err)
		return Frame{}, d.err
	}
	f.Index = d.next

	for i, bp := range f.Positions {
		if err := d.surface.SetPosition(i, d.state.Bodies[i], bp.Position); err != nil {
			d.err = &FrameError{Index: d.next, T: t, Wrapped: err}
			return Frame{}, d.err
		}
	}
	if err := d.surface.Present(f); err != nil {
		d.err = &FrameError{Index: d.next, T: t, Wrapped: err}
		return Frame{}, d.err
	}
	d.state.apply(f)

	for _, m := range d.metrics {
		m.OnFrame(f)
	}
	for _, obs := range d.observers {
		obs.OnFrame(f)
	}

	d.next++
	if d.next == len(d.state.Times) {
		d.logger.Debug("driver finished", "frames", d.next, "t", t)
	}
	return f, nil
}

// Run delivers every frame back to back. It is the batch host; timer-driven
// hosts call Start and Step themselves.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if err := d.Start(); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}
	for !d.Done() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, err := d.Step()
		if err != nil {
			return result, err
		}
		result.Frames++
		result.LastT = f.T
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Metrics returns the current metric values.
func (d *Driver) Metrics() map[string]float64 {
	values := make(map[string]float64, len(d.metrics))
	for _, m := range d.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}
