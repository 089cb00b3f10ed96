package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/san-kum/dotsim/internal/config"
	"github.com/san-kum/dotsim/internal/dots"
	"github.com/san-kum/dotsim/internal/palette"
	"github.com/san-kum/dotsim/internal/random"
	"github.com/san-kum/dotsim/internal/scene"
	"github.com/san-kum/dotsim/internal/tooltip"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusRunning
	StatusStopped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Options are fixed for the life of a session.
type Options struct {
	Width, Height int
	// Radius is the initial radius cap.
	Radius     int
	Interval   time.Duration
	Transition time.Duration
}

// Report summarizes one generate+reconcile cycle.
type Report struct {
	Seq        int
	Entering   int
	Persisting int
	Exiting    int
	RadiusCap  int
	At         time.Time
}

// Frame is a copy of everything a renderer needs.
type Frame struct {
	Status        Status
	Width, Height int
	RadiusCap     int
	Cycles        int
	Last          Report
	Elements      []scene.Element
	Live          int
	Tooltip       tooltip.State
	Transition    time.Duration
	At            time.Time
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithSampler(r *random.Sampler) Option {
	return func(s *Session) { s.rng = r }
}

// WithCycleHook registers f to run on the session goroutine after every cycle.
func WithCycleHook(f func(Report)) Option {
	return func(s *Session) { s.hook = f }
}

type loadResult struct {
	palette palette.Palette
	err     error
}

type Session struct {
	opts   Options
	loader palette.Loader
	logger *log.Logger
	rng    *random.Sampler
	hook   func(Report)

	// mu guards started, and everything else until started is set.
	mu      sync.Mutex
	started bool
	cmds    chan func()
	ready   chan struct{}
	done    chan struct{}
	err     error

	// Owned by the Run goroutine.
	status        Status
	gen           *dots.Generator
	scene         *scene.Scene
	tip           tooltip.Controller
	timer         *time.Timer
	stopRequested bool
	cycles        int
	last          Report
}

func New(opts Options, loader palette.Loader, options ...Option) *Session {
	s := &Session{
		opts:   opts,
		loader: loader,
		logger: log.Default(),
		cmds:   make(chan func()),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		scene:  scene.New(opts.Transition),
	}
	for _, o := range options {
		o(s)
	}
	if s.rng == nil {
		s.rng = random.New()
	}
	if s.opts.Width <= 0 {
		s.opts.Width = config.DefaultWidth
	}
	if s.opts.Height <= 0 {
		s.opts.Height = config.DefaultHeight
	}
	if s.opts.Radius <= 0 {
		s.opts.Radius = config.DefaultRadius
	}
	if s.opts.Interval <= 0 {
		s.opts.Interval = config.DefaultInterval
	}
	return s
}

// Ready is closed once the palette fetch has finished, either way.
func (s *Session) Ready() <-chan struct{} { return s.ready }

// Err reports the palette fetch error. Only meaningful after Ready is closed.
func (s *Session) Err() error {
	select {
	case <-s.ready:
		return s.err
	default:
		return nil
	}
}

// Run fetches the palette and serves the session until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrStarted
	}
	s.started = true
	s.status = StatusLoading
	s.mu.Unlock()

	defer close(s.done)
	defer s.stopTimer()
	defer func() {
		if s.status == StatusLoading {
			s.err = ctx.Err()
			close(s.ready)
		}
	}()

	loaded := make(chan loadResult, 1)
	go func() {
		p, err := s.loader.Load(ctx)
		loaded <- loadResult{palette: p, err: err}
	}()

	for {
		var fire <-chan time.Time
		if s.timer != nil {
			fire = s.timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-loaded:
			loaded = nil
			s.onLoaded(res)
		case <-fire:
			s.timer = nil
			if s.status == StatusRunning {
				s.goCycle()
			}
		case f := <-s.cmds:
			f()
		}
	}
}

func (s *Session) onLoaded(res loadResult) {
	defer close(s.ready)

	if res.err == nil && len(res.palette) == 0 {
		res.err = palette.ErrEmpty
	}
	if res.err != nil {
		s.err = res.err
		s.status = StatusFailed
		s.logger.Printf("dots: palette load failed: %v", res.err)
		return
	}

	s.gen = dots.NewGenerator(s.opts.Width, s.opts.Height, s.opts.Radius, res.palette, s.rng)
	if s.stopRequested {
		s.status = StatusStopped
		s.logger.Printf("dots: palette loaded (%d colors), stopped before start", len(res.palette))
		return
	}
	s.logger.Printf("dots: palette loaded (%d colors)", len(res.palette))
	s.goCycle()
}

// idle runs f and reports true if Run has not been called yet.
func (s *Session) idle(f func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	f()
	return true
}

// call runs f on the session goroutine and waits for it.
func (s *Session) call(f func()) error {
	finished := make(chan struct{})
	select {
	case s.cmds <- func() { f(); close(finished) }:
	case <-s.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// Go paints once and keeps repainting every Interval.
func (s *Session) Go() error {
	if s.idle(func() {}) {
		return ErrNotLoaded
	}
	var err error
	if cerr := s.call(func() {
		if s.gen == nil {
			err = ErrNotLoaded
			return
		}
		s.goCycle()
	}); cerr != nil {
		return cerr
	}
	return err
}

// Stop cancels the pending repaint. Running transitions finish on their own.
// Before the palette has loaded, it keeps the session from starting.
func (s *Session) Stop() error {
	if s.idle(func() { s.stopRequested = true }) {
		return nil
	}
	return s.call(func() {
		s.stopTimer()
		switch s.status {
		case StatusLoading:
			s.stopRequested = true
		case StatusRunning:
			s.status = StatusStopped
		}
	})
}

// Paint runs exactly one cycle without touching the timer.
func (s *Session) Paint() error {
	if s.idle(func() {}) {
		return ErrNotLoaded
	}
	var err error
	if cerr := s.call(func() {
		if s.gen == nil {
			err = ErrNotLoaded
			return
		}
		s.cycle()
	}); cerr != nil {
		return cerr
	}
	return err
}

// Reset clears the canvas and, when the palette is loaded, starts painting
// again. The radius cap keeps growing from where it was.
func (s *Session) Reset() error {
	if s.idle(func() {}) {
		return ErrNotLoaded
	}
	var err error
	if cerr := s.call(func() {
		s.stopTimer()
		s.scene.Clear()
		s.tip.Hide()
		if s.gen == nil {
			err = ErrNotLoaded
			return
		}
		s.goCycle()
	}); cerr != nil {
		return cerr
	}
	return err
}

// Hover shows the tooltip of the topmost dot under canvas point (x, y), or
// hides it when there is none. It reports whether a dot was hit.
func (s *Session) Hover(x, y float64) (bool, error) {
	if s.idle(func() {}) {
		return false, ErrNotLoaded
	}
	var hit bool
	err := s.call(func() {
		s.scene.Advance(time.Now())
		e, ok := s.scene.HitTest(x, y)
		if !ok {
			s.tip.Hide()
			return
		}
		hit = true
		s.tip.Show(e.Dot)
	})
	return hit, err
}

func (s *Session) Unhover() error {
	if s.idle(s.tip.Hide) {
		return nil
	}
	return s.call(s.tip.Hide)
}

// Snapshot advances transitions to now and copies the scene.
func (s *Session) Snapshot() (Frame, error) {
	var f Frame
	if s.idle(func() { f = s.frame(time.Now()) }) {
		return f, nil
	}
	err := s.call(func() { f = s.frame(time.Now()) })
	return f, err
}

func (s *Session) frame(now time.Time) Frame {
	s.scene.Advance(now)
	return Frame{
		Status:     s.status,
		Width:      s.opts.Width,
		Height:     s.opts.Height,
		RadiusCap:  s.radiusCap(),
		Cycles:     s.cycles,
		Last:       s.last,
		Elements:   s.scene.Elements(),
		Live:       s.scene.LiveLen(),
		Tooltip:    s.tip.State(),
		Transition: s.scene.Duration(),
		At:         now,
	}
}

func (s *Session) radiusCap() int {
	if s.gen == nil {
		return s.opts.Radius
	}
	return s.gen.RadiusCap()
}

func (s *Session) goCycle() {
	s.stopTimer()
	s.status = StatusRunning
	s.cycle()
	s.timer = time.NewTimer(s.opts.Interval)
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) cycle() {
	now := time.Now()
	batch, err := s.gen.Next()
	if err != nil {
		s.logger.Printf("dots: generate: %v", err)
		return
	}
	diff := s.scene.Apply(batch, now)

	s.cycles++
	s.last = Report{
		Seq:        s.cycles,
		Entering:   len(diff.Entering),
		Persisting: len(diff.Persisting),
		Exiting:    len(diff.Exiting),
		RadiusCap:  s.gen.RadiusCap(),
		At:         now,
	}
	if s.hook != nil {
		s.hook(s.last)
	}
}
