package session_test

import (
	"context"
	"log"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/san-kum/dotsim/internal/palette"
	"github.com/san-kum/dotsim/internal/scene"
	"github.com/san-kum/dotsim/internal/session"
)

const interval = 40 * time.Millisecond

var red = palette.Color{Name: "Red", Hex: "#FF0000", RGB: "255,0,0"}

// gateLoader holds the fetch until the gate is closed.
type gateLoader struct {
	gate chan struct{}
	p    palette.Palette
}

func (g *gateLoader) Load(ctx context.Context) (palette.Palette, error) {
	select {
	case <-g.gate:
		return g.p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func opts() session.Options {
	return session.Options{Width: 400, Height: 400, Radius: 10, Interval: interval, Transition: 20 * time.Millisecond}
}

func start(s *session.Session) {
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	DeferCleanup(cancel)
}

func cycles(s *session.Session) int {
	f, err := s.Snapshot()
	Expect(err).NotTo(HaveOccurred())
	return f.Cycles
}

func status(s *session.Session) session.Status {
	f, err := s.Snapshot()
	Expect(err).NotTo(HaveOccurred())
	return f.Status
}

var _ = Describe("Session", func() {
	var logs *gbytes.Buffer

	BeforeEach(func() {
		logs = gbytes.NewBuffer()
	})

	Context("when the palette loads", func() {
		var s *session.Session

		BeforeEach(func() {
			s = session.New(opts(), palette.Static{red}, session.WithLogger(log.New(logs, "", 0)))
			start(s)
			Eventually(s.Ready()).Should(BeClosed())
		})

		It("starts painting on its own", func() {
			Expect(s.Err()).NotTo(HaveOccurred())
			Expect(status(s)).To(Equal(session.StatusRunning))
			Eventually(func() int { return cycles(s) }).Should(BeNumerically(">=", 3))
			Expect(logs).To(gbytes.Say("palette loaded"))
		})

		It("keeps every dot inside the canvas and below the cap", func() {
			Expect(s.Paint()).To(Succeed())
			f, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			for _, e := range f.Elements {
				Expect(e.Dot.X).To(BeNumerically("<", 400))
				Expect(e.Dot.Y).To(BeNumerically("<", 400))
				Expect(e.Dot.R).To(BeNumerically("<", f.RadiusCap))
				Expect(e.Dot.C).To(Equal(red))
			}
			Expect(f.RadiusCap).To(BeNumerically("<=", 31))
		})

		It("paints exactly once after stop", func() {
			Expect(s.Stop()).To(Succeed())
			Expect(status(s)).To(Equal(session.StatusStopped))
			n := cycles(s)

			Expect(s.Paint()).To(Succeed())
			Expect(cycles(s)).To(Equal(n + 1))
			Consistently(func() int { return cycles(s) }, 4*interval, interval/4).Should(Equal(n + 1))
			Expect(status(s)).To(Equal(session.StatusStopped))
		})

		It("resumes with go", func() {
			Expect(s.Stop()).To(Succeed())
			n := cycles(s)

			Expect(s.Go()).To(Succeed())
			Expect(status(s)).To(Equal(session.StatusRunning))
			Eventually(func() int { return cycles(s) }).Should(BeNumerically(">=", n+3))
		})

		It("clears the canvas on reset", func() {
			Expect(s.Stop()).To(Succeed())
			Expect(s.Reset()).To(Succeed())
			f, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Last.Exiting).To(BeZero())
			Expect(f.Last.Persisting).To(BeZero())
			Expect(f.Status).To(Equal(session.StatusRunning))
		})

		It("shows and hides the tooltip", func() {
			Expect(s.Stop()).To(Succeed())
			var target scene.Element
			Eventually(func() bool {
				f, err := s.Snapshot()
				Expect(err).NotTo(HaveOccurred())
				for _, e := range f.Elements {
					if !e.Exiting && !e.Animating() && e.R > 0 {
						target = e
						return true
					}
				}
				return false
			}).Should(BeTrue())

			hit, err := s.Hover(target.CX, target.CY)
			Expect(err).NotTo(HaveOccurred())
			Expect(hit).To(BeTrue())
			f, _ := s.Snapshot()
			Expect(f.Tooltip.Visible).To(BeTrue())
			Expect(f.Tooltip.Lines).To(ContainElement("Name: Red"))

			Expect(s.Unhover()).To(Succeed())
			f, _ = s.Snapshot()
			Expect(f.Tooltip.Visible).To(BeFalse())
		})
	})

	Context("when the palette fails to load", func() {
		It("logs and never paints", func() {
			s := session.New(opts(), palette.Static(nil), session.WithLogger(log.New(logs, "", 0)))
			start(s)

			Eventually(s.Ready()).Should(BeClosed())
			Expect(s.Err()).To(MatchError(palette.ErrEmpty))
			Expect(logs).To(gbytes.Say("palette load failed"))
			Expect(status(s)).To(Equal(session.StatusFailed))
			Consistently(func() int { return cycles(s) }, 3*interval, interval/4).Should(BeZero())

			Expect(s.Paint()).To(MatchError(session.ErrNotLoaded))
			Expect(s.Go()).To(MatchError(session.ErrNotLoaded))
		})
	})

	Context("when stopped while loading", func() {
		It("never starts on its own", func() {
			loader := &gateLoader{gate: make(chan struct{}), p: palette.Palette{red}}
			s := session.New(opts(), loader, session.WithLogger(log.New(logs, "", 0)))
			start(s)

			Eventually(func() session.Status { return status(s) }).Should(Equal(session.StatusLoading))
			Expect(s.Paint()).To(MatchError(session.ErrNotLoaded))
			Expect(s.Stop()).To(Succeed())
			close(loader.gate)

			Eventually(s.Ready()).Should(BeClosed())
			Expect(status(s)).To(Equal(session.StatusStopped))
			Consistently(func() int { return cycles(s) }, 3*interval, interval/4).Should(BeZero())

			Expect(s.Go()).To(Succeed())
			Eventually(func() int { return cycles(s) }).Should(BeNumerically(">=", 2))
		})
	})

	Context("after the context is cancelled", func() {
		It("rejects commands", func() {
			s := session.New(opts(), &gateLoader{gate: make(chan struct{})})
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- s.Run(ctx) }()

			Eventually(func() session.Status { return status(s) }).Should(Equal(session.StatusLoading))
			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
			Expect(s.Ready()).To(BeClosed())
			Expect(s.Paint()).To(MatchError(session.ErrClosed))
			Expect(s.Run(context.Background())).To(MatchError(session.ErrStarted))
		})
	})

	Context("when commands arrive before Run", func() {
		It("answers without blocking and honours stop", func() {
			s := session.New(opts(), palette.Static{red}, session.WithLogger(log.New(logs, "", 0)))

			Expect(s.Go()).To(MatchError(session.ErrNotLoaded))
			Expect(s.Paint()).To(MatchError(session.ErrNotLoaded))
			Expect(s.Reset()).To(MatchError(session.ErrNotLoaded))
			_, err := s.Hover(10, 10)
			Expect(err).To(MatchError(session.ErrNotLoaded))
			Expect(s.Unhover()).To(Succeed())
			Expect(status(s)).To(Equal(session.StatusIdle))

			Expect(s.Stop()).To(Succeed())
			start(s)
			Eventually(s.Ready()).Should(BeClosed())
			Expect(status(s)).To(Equal(session.StatusStopped))
			Consistently(func() int { return cycles(s) }, 3*interval, interval/4).Should(BeZero())

			Expect(s.Paint()).To(Succeed())
			Expect(cycles(s)).To(Equal(1))
		})
	})

	Context("with zero options", func() {
		It("paints on the default canvas", func() {
			s := session.New(session.Options{}, palette.Static{red}, session.WithLogger(log.New(logs, "", 0)))
			Expect(s.Stop()).To(Succeed())
			start(s)
			Eventually(s.Ready()).Should(BeClosed())
			Expect(s.Paint()).To(Succeed())

			f, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Width).To(Equal(400))
			Expect(f.Height).To(Equal(400))
			Expect(f.RadiusCap).To(Equal(11))
			Expect(f.Transition).To(Equal(scene.DefaultDuration))

			xs := map[float64]bool{}
			for _, e := range f.Elements {
				xs[e.CX] = true
			}
			Expect(len(xs)).To(BeNumerically(">", 1))
		})
	})

	Context("reporting cycles", func() {
		It("accounts for every dot between consecutive paints", func() {
			var reports []session.Report
			loader := &gateLoader{gate: make(chan struct{}), p: palette.Palette{red}}
			s := session.New(opts(), loader,
				session.WithCycleHook(func(r session.Report) { reports = append(reports, r) }),
				session.WithLogger(log.New(logs, "", 0)))
			start(s)
			Expect(s.Stop()).To(Succeed())
			close(loader.gate)
			Eventually(s.Ready()).Should(BeClosed())

			Expect(s.Paint()).To(Succeed())
			first, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(1))
			Expect(reports[0].Entering).To(Equal(first.Live))
			Expect(reports[0].Exiting).To(BeZero())

			Expect(s.Paint()).To(Succeed())
			second, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(2))
			r := reports[1]
			Expect(r.Seq).To(Equal(2))
			Expect(r.Exiting + r.Persisting).To(Equal(first.Live))
			Expect(r.Entering + r.Persisting).To(Equal(second.Live))
			Expect(r.RadiusCap).To(Equal(12))
		})
	})
})
