package turbo_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/turbo"
)

var _ = Describe("Machine", func() {
	var (
		design  *config.Design
		machine *turbo.Machine
	)

	BeforeEach(func() {
		design = config.GetPreset("base")
	})

	JustBeforeEach(func() {
		var err error
		machine, err = turbo.New(design)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("global cycle", func() {
		It("derives the polytropic efficiency and outlet totals", func() {
			Expect(machine.EtaPoly()).To(BeNumerically("~", 0.900000000717639, 1e-12))
			Expect(machine.Outlet().Tt).To(BeNumerically("~", 452.47879644, 1e-8))
			Expect(machine.Outlet().Pt).To(BeNumerically("~", 419150, 1e-6))
			Expect(machine.DeltaTt()).To(BeNumerically("~", 164.4787964394765, 1e-9))
			Expect(machine.TR()).To(BeNumerically("~", 452.4787964394765/288, 1e-12))
		})

		It("sizes the inlet annulus from the hub to tip ratio", func() {
			in := machine.Inlet()
			Expect(in.P()).To(BeNumerically("~", 87908.56, 0.01))
			Expect(in.Rho()).To(BeNumerically("~", 1.10657931, 1e-8))

			inner, err := in.InnerRadius()
			Expect(err).NotTo(HaveOccurred())
			Expect(inner).To(BeNumerically("~", 0.11307, 1e-5))
		})

		It("places the outlet at the inlet mean radius", func() {
			out := machine.Outlet()
			Expect(out.Radius).To(Equal(machine.Inlet().Radius))
			Expect(out.T()).To(BeNumerically("~", 441.27919464754024, 1e-9))
			Expect(out.P()).To(BeNumerically("~", 383948.29030573135, 1e-6))
			Expect(out.Rho()).To(BeNumerically("~", 3.0316383304552206, 1e-9))

			inner, err := out.InnerRadius()
			Expect(err).NotTo(HaveOccurred())
			outer, err := out.OuterRadius()
			Expect(err).NotTo(HaveOccurred())
			Expect(inner).To(BeNumerically("~", 0.14896747363541835, 1e-9))
			Expect(outer).To(BeNumerically("~", 0.1902387298684139, 1e-9))
		})
	})

	Describe("stages", func() {
		It("chains each stage from the previous mid station", func() {
			stages := machine.Stages()
			Expect(stages).To(HaveLen(7))
			for i := 1; i < len(stages); i++ {
				Expect(stages[i].Inlet().Tt).To(Equal(stages[i-1].Mid().Tt))
				Expect(stages[i].Inlet().Pt).To(Equal(stages[i-1].Mid().Pt))
			}
			Expect(stages[6].Mid().Pt).To(BeNumerically("~", 419150, 1e-6))
			Expect(stages[6].Mid().Tt).To(BeNumerically("~", 452.4787964394765, 1e-9))
		})

		It("matches the second stage reference stations", func() {
			s2 := machine.Stages()[1]
			Expect(s2.Inlet().Pt).To(BeNumerically("~", 124787.12941734974, 1e-6))
			Expect(s2.Mid().Pt).To(BeNumerically("~", 159563.80095257366, 1e-6))
			Expect(s2.MeanRadius()).To(BeNumerically("~", 0.1696031, 1e-7))
		})

		It("keeps the temperature rise lossless", func() {
			for _, st := range machine.Stages() {
				Expect(st.Mid().Tt).To(Equal(st.Inlet().Tt + st.DeltaTt()))
			}
		})
	})

	Describe("blade rows", func() {
		It("resolves every row with even stator counts", func() {
			want := [][2]int{{19, 20}, {22, 24}, {26, 28}, {30, 32}, {35, 36}, {41, 42}, {46, 48}}
			for i, st := range machine.Stages() {
				Expect(st.Rotor().Z()).To(Equal(want[i][0]), "stage %d rotor", i+1)
				Expect(st.Stator().Z()).To(Equal(want[i][1]), "stage %d stator", i+1)
				Expect(st.Stator().Z() % blade.StatorParity).To(BeZero())
			}
			for _, row := range machine.Rows() {
				Expect(row.Resolved()).To(BeTrue())
				Expect(row.Hub() + row.Tip()).To(BeNumerically("~", 2*row.Mean(), 1e-12))
			}
		})

		It("exports every stage in millimetres", func() {
			ex, err := machine.Export()
			Expect(err).NotTo(HaveOccurred())
			Expect(ex.Stages).To(HaveLen(7))
			Expect(ex.Stages[0].StageHeight).To(BeNumerically("~", 130.1214258605644, 1e-6))
			Expect(ex.Stages[6].Stator.DiskHeight).To(BeNumerically("~", 23.202360690487714, 1e-6))
		})
	})

	Context("with an equal temperature rise split", func() {
		BeforeEach(func() {
			design.DeltaTtStg = config.EqualRise()
		})

		It("divides the overall rise evenly", func() {
			for _, st := range machine.Stages() {
				Expect(st.DeltaTt()).To(BeNumerically("~", 23.496970919925218, 1e-9))
			}
			Expect(machine.Stages()[6].Mid().Pt).To(BeNumerically("~", 419150, 1e-6))
		})
	})
})

var _ = Describe("Preconditions", func() {
	DescribeTable("rejects an inconsistent design before evaluating any stage",
		func(modify func(*config.Design), want error) {
			d := config.GetPreset("base")
			modify(d)
			_, err := turbo.New(d)
			Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)

			var stageErr *turbo.StageError
			Expect(errors.As(err, &stageErr)).To(BeFalse())
		},
		Entry("last stage reaction", func(d *config.Design) {
			d.RStg = config.List(0.7, 0.7, 0.5, 0.5, 0.5, 0.5, 0.6)
		}, turbo.ErrLastStageReaction),
		Entry("scalar reaction", func(d *config.Design) {
			d.RStg = config.Scalar(0.7)
		}, turbo.ErrLastStageReaction),
		Entry("reaction list length", func(d *config.Design) {
			d.RStg = config.List(0.7, 0.5)
		}, turbo.ErrStageCount),
		Entry("temperature rise length", func(d *config.Design) {
			d.DeltaTtStg = config.Rises(20, 25)
		}, turbo.ErrStageCount),
		Entry("non-finite temperature rise", func(d *config.Design) {
			d.DeltaTtStg = config.Rises(20, 25, 25, 25, 25, math.NaN(), 19.4787964394765)
		}, turbo.ErrTemperatureRise),
	)
})

var _ = Describe("Expansion and zero-work stages", func() {
	DescribeTable("assemble with the stage rise carried into the mid station",
		func(modify func(*config.Design)) {
			d := config.GetPreset("single")
			modify(d)
			m, err := turbo.New(d)
			Expect(err).NotTo(HaveOccurred())
			for _, st := range m.Stages() {
				Expect(st.DeltaTt()).To(BeNumerically("<=", 0))
				Expect(st.Mid().Tt).To(BeNumerically("~", st.Inlet().Tt+st.DeltaTt(), 1e-9))
			}
		},
		Entry("pressure ratio below one", func(d *config.Design) {
			d.PR = 0.8
		}),
		Entry("negative rise list", func(d *config.Design) {
			d.DeltaTtStg = config.Rises(-10)
		}),
		Entry("zero rise", func(d *config.Design) {
			d.DeltaTtStg = config.Rises(0)
		}),
	)

	It("cools the flow through an expansion", func() {
		d := config.GetPreset("single")
		d.PR = 0.8
		m, err := turbo.New(d)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.DeltaTt()).To(BeNumerically("<", 0))
		Expect(m.TR()).To(BeNumerically("<", 1))
		Expect(m.Stages()[0].PR()).To(BeNumerically("~", 0.8, 1e-9))
	})
})
