package firmware

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
)

type triple struct {
	Local, X, Y uint32
}

func stepN(l *Loop, bank *cell.Bank, n int) []triple {
	out := make([]triple, 0, n)
	for i := 0; i < n; i++ {
		Expect(l.Step()).To(Succeed())
		out = append(out, triple{l.Local(), bank.ReadX(), bank.ReadY()})
	}

	return out
}

var _ = Describe("Loop", func() {
	var (
		bank *cell.Bank
		loop *Loop
	)

	Context("starting from X = 0", func() {
		BeforeEach(func() {
			bank = cell.NewBank(0)
			loop = New(bank, WithInvariant(InvariantEqual))
		})

		It("should read X once to initialize the local counter", func() {
			Expect(loop.Local()).To(Equal(uint32(0)))
			Expect(loop.Steps()).To(BeZero())
		})

		It("should keep Local, X and Y in lockstep", func() {
			got := stepN(loop, bank, 10)

			for i, tr := range got {
				v := uint32(i + 1)
				Expect(tr).To(Equal(triple{v, v, v}))
			}
			Expect(loop.Steps()).To(Equal(uint64(10)))
		})
	})

	Context("at the 32-bit boundary", func() {
		BeforeEach(func() {
			bank = cell.NewBank(4294967294)
			loop = New(bank, WithInvariant(InvariantEqual))
		})

		It("should wrap to zero instead of faulting", func() {
			got := stepN(loop, bank, 3)

			Expect(got).To(Equal([]triple{
				{4294967295, 4294967295, 4294967295},
				{0, 0, 0},
				{1, 1, 1},
			}))
		})
	})

	Context("with the default X constant", func() {
		It("should wrap on the very first step", func() {
			bank = cell.NewBank(cell.XInit)
			loop = New(bank)

			Expect(loop.Local()).To(Equal(uint32(math.MaxUint32)))
			Expect(loop.Step()).To(Succeed())
			Expect(loop.Local()).To(BeZero())
			Expect(bank.ReadX()).To(BeZero())
			Expect(bank.ReadY()).To(BeZero())
		})
	})

	Context("in checked mode", func() {
		It("should abort when a counter reaches the maximum value", func() {
			bank = cell.NewBank(math.MaxUint32 - 1)
			loop = New(bank, WithMode(arith.Checked))

			Expect(loop.Step()).To(Succeed())
			Expect(bank.ReadX()).To(Equal(uint32(math.MaxUint32)))

			Expect(func() { _ = loop.Step() }).To(PanicWith(
				MatchError(arith.ErrOverflow)))
		})

		It("should behave like wrapping mode below the maximum", func() {
			bank = cell.NewBank(0)
			loop = New(bank, WithMode(arith.Checked), WithInvariant(InvariantEqual))

			got := stepN(loop, bank, 3)
			Expect(got[2]).To(Equal(triple{3, 3, 3}))
			Expect(loop.Mode()).To(Equal(arith.Checked))
		})
	})

	Context("with the Y-lags-by-one invariant", func() {
		It("should fail on the first step", func() {
			bank = cell.NewBank(0)
			loop = New(bank, WithInvariant(InvariantYLagsByOne))

			err := loop.Step()

			Expect(err).To(MatchError(ErrInvariant))

			var invErr *InvariantError
			Expect(errors.As(err, &invErr)).To(BeTrue())
			Expect(invErr.Invariant).To(Equal(InvariantYLagsByOne))
			Expect(invErr.Local).To(Equal(uint32(1)))
			Expect(invErr.X).To(Equal(uint32(1)))
			Expect(invErr.Y).To(Equal(uint32(1)))
		})
	})

	Context("when an outside writer disturbs X", func() {
		It("should report the drift through the equality invariant", func() {
			bank = cell.NewBank(0)
			loop = New(bank, WithInvariant(InvariantEqual))

			Expect(loop.Step()).To(Succeed())
			bank.WriteX(100)

			err := loop.Step()
			Expect(err).To(MatchError(ErrInvariant))
			Expect(bank.ReadY()).To(Equal(bank.ReadX()))
		})
	})

	Context("Run", func() {
		var mockCtrl *gomock.Controller

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should hand a failed invariant to the halter", func() {
			halter := NewMockHalter(mockCtrl)
			bank = cell.NewBank(0)
			loop = New(bank,
				WithInvariant(InvariantYLagsByOne),
				WithHalter(halter))

			halter.EXPECT().
				Halt(gomock.Any()).
				Do(func(err error) {
					panic(err)
				})

			Expect(func() { loop.Run() }).To(PanicWith(MatchError(ErrInvariant)))
			Expect(loop.Steps()).To(Equal(uint64(1)))
		})

		It("should refuse a halter that returns", func() {
			halter := NewMockHalter(mockCtrl)
			bank = cell.NewBank(0)
			loop = New(bank,
				WithInvariant(InvariantYLagsByOne),
				WithHalter(halter))

			halter.EXPECT().Halt(gomock.Any())

			Expect(func() { loop.Run() }).To(PanicWith("firmware: halter returned"))
		})

		It("should panic with the error by default", func() {
			bank = cell.NewBank(0)
			loop = New(bank, WithInvariant(InvariantYLagsByOne))

			Expect(func() { loop.Run() }).To(PanicWith(MatchError(ErrInvariant)))
		})
	})
})

var _ = Describe("Invariant", func() {
	It("should round-trip through its name", func() {
		for _, inv := range []Invariant{
			InvariantNone, InvariantEqual, InvariantYLagsByOne,
		} {
			parsed, err := ParseInvariant(inv.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(inv))
		}
	})

	It("should reject unknown names", func() {
		_, err := ParseInvariant("x-equals-two")
		Expect(err).To(HaveOccurred())
	})

	It("should pass when no check is configured", func() {
		Expect(InvariantNone.Check(1, cell.NewBank(99))).To(Succeed())
	})
})
