package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/sim"
)

var _ = Describe("Rope lifecycle", func() {
	const dt = 1.0 / 60.0

	var (
		s      *sim.Simulator
		owner  dynamo.Vec2
		target dynamo.Vec2
	)

	grapple := func() { s.Tick(dynamo.Input{Owner: owner, Intent: dynamo.GrappleAt(target)}, dt) }
	release := func() { s.Tick(dynamo.Input{Owner: owner, Intent: dynamo.Release()}, dt) }
	idle := func() { s.Tick(dynamo.Input{Owner: owner}, dt) }

	BeforeEach(func() {
		owner = dynamo.V(0, 0)
		target = dynamo.V(12, -6)
		s = sim.New(sim.DefaultParams(), nil)
	})

	Context("before any grapple", func() {
		It("is inactive and renders nothing", func() {
			idle()
			Expect(s.Active()).To(BeFalse())
			Expect(s.Points()).To(BeEmpty())
		})
	})

	Context("once grappled", func() {
		BeforeEach(func() {
			for i := 0; i < 30; i++ {
				grapple()
			}
		})

		It("becomes active with one point per chain slot", func() {
			Expect(s.Active()).To(BeTrue())
			Expect(s.Points()).To(HaveLen(sim.DefaultPoints))
			Expect(s.RopeLength()).To(BeNumerically(">", 0))
		})

		It("pins the ends to the anchor and the rope end", func() {
			pts := s.Points()
			Expect(pts[0]).To(Equal(s.Start()))
			Expect(pts[len(pts)-1]).To(Equal(s.End()))
		})

		It("converges the end onto the grapple point", func() {
			Expect(s.End().DistanceTo(target)).To(BeNumerically("<", 1e-6))
		})

		It("holds everything on a neither tick", func() {
			length, end := s.RopeLength(), s.End()
			idle()
			Expect(s.RopeLength()).To(Equal(length))
			Expect(s.End()).To(Equal(end))
		})

		When("released", func() {
			It("retracts, then collapses onto the anchor", func() {
				for i := 0; i < 120 && s.Active(); i++ {
					release()
				}
				Expect(s.Active()).To(BeFalse())

				release()
				Expect(s.Points()).To(BeEmpty())
				for i := 0; i < s.Chain().Len(); i++ {
					Expect(s.Chain().At(i).Current).To(Equal(s.Start()))
					Expect(s.Chain().At(i).Prev).To(Equal(s.Start()))
				}
			})

			It("can be grappled again", func() {
				for i := 0; i < 120 && s.Active(); i++ {
					release()
				}
				grapple()
				Expect(s.Active()).To(BeTrue())
			})
		})
	})
})
