package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

type memorySurface struct {
	bodies    []orbit.Body
	positions map[string]orbit.Position
	presented []float64
}

func (m *memorySurface) Init(bodies []orbit.Body) error {
	m.bodies = bodies
	m.positions = make(map[string]orbit.Position)
	m.presented = nil
	return nil
}

func (m *memorySurface) SetPosition(index int, b orbit.Body, p orbit.Position) error {
	m.positions[b.Name] = p
	return nil
}

func (m *memorySurface) Present(f sim.Frame) error {
	m.presented = append(m.presented, f.T)
	return nil
}

var _ = Describe("Driver", func() {
	var (
		cfg     *config.SimulationConfig
		surface *memorySurface
		driver  *sim.Driver
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Bodies = []config.BodyConfig{{Name: "Earth", Radius: 1, Period: 1.0}}
		surface = &memorySurface{}
	})

	JustBeforeEach(func() {
		state, err := sim.Initialize(cfg)
		Expect(err).NotTo(HaveOccurred())
		driver = sim.New(state, surface)
		Expect(driver.Start()).To(Succeed())
	})

	It("starts the surface with no positions", func() {
		Expect(surface.bodies).To(HaveLen(1))
		Expect(surface.positions).To(BeEmpty())
	})

	It("places Earth at (15, 0) on the first frame", func() {
		f, err := driver.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.T).To(BeZero())
		Expect(surface.positions["Earth"].X).To(Equal(15.0))
		Expect(surface.positions["Earth"].Y).To(Equal(0.0))
	})

	It("overwrites the position each frame instead of accumulating", func() {
		for i := 0; i < 23; i++ {
			_, err := driver.Step()
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(surface.positions).To(HaveLen(1))

		p, ok := driver.State().PositionOf("Earth")
		Expect(ok).To(BeTrue())
		Expect(math.Hypot(p.X, p.Y)).To(BeNumerically("~", 15.0, 1e-9))
	})

	It("delivers frames in increasing t and then stops", func() {
		for !driver.Done() {
			_, err := driver.Step()
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(surface.presented).To(HaveLen(365))
		for i := 1; i < len(surface.presented); i++ {
			Expect(surface.presented[i]).To(BeNumerically(">", surface.presented[i-1]))
		}

		_, err := driver.Step()
		Expect(err).To(MatchError(sim.ErrFinished))
	})

	Context("with a shorter schedule", func() {
		BeforeEach(func() {
			cfg.Frames = 10
		})

		It("runs the batch loop to completion", func() {
			result, err := driver.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(Equal(10))
			Expect(result.LastT).To(Equal(9.0))
		})
	})

	Context("with a duplicate body name", func() {
		It("refuses to initialize", func() {
			cfg.Bodies = append(cfg.Bodies, config.BodyConfig{Name: "Earth", Radius: 2, Period: 3})
			_, err := sim.Initialize(cfg)
			Expect(err).To(MatchError(orbit.ErrDuplicateName))
		})
	})
})
