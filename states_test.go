package quijy

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	gonum "gonum.org/v1/gonum/mat"

	"github.com/fumin/quijy/mat"
)

func TestSig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s string
		p Pauli
	}{
		{s: "x", p: X},
		{s: "Y", p: Y},
		{s: "3", p: Z},
		{s: "i", p: I},
	}
	for _, test := range tests {
		t.Run(test.s, func(t *testing.T) {
			t.Parallel()
			p, err := ParsePauli(test.s)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if p != test.p {
				t.Fatalf("%v, expected %v", p, test.p)
			}
			s := Sig(p)
			if !s.IsHermitian(0) {
				t.Fatalf("%s", s)
			}
			// Every Pauli matrix squares to the identity.
			sq := mat.FromDense(mul(s.Dense(), s.Dense()))
			if !sq.Equal(mat.Eye(2)) {
				t.Fatalf("%s", sq)
			}
		})
	}

	if _, err := ParsePauli("w"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("%+v", err)
	}

	// Mutating a returned matrix leaves later lookups intact.
	x := Sig(X)
	x.Scale(3)
	if !Sig(X).Equal(mat.M([][]complex128{{0, 1}, {1, 0}})) {
		t.Fatalf("%s", Sig(X))
	}
}

func TestBasisVec(t *testing.T) {
	t.Parallel()
	v, err := BasisVec(2, 4)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i := range 4 {
		var want complex128
		if i == 2 {
			want = 1
		}
		if v.At(i, 0) != want {
			t.Fatalf("%d %v", i, v.At(i, 0))
		}
	}
	for _, dir := range []int{-1, 4} {
		if _, err := BasisVec(dir, 4); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%d %+v", dir, err)
		}
	}
}

func TestBellState(t *testing.T) {
	t.Parallel()
	states := make([]*gonum.CDense, 0, 4)
	for _, k := range []BellKind{PhiPlus, PhiMinus, PsiPlus, PsiMinus} {
		psi, err := BellState(k)
		if err != nil {
			t.Fatalf("%v %+v", k, err)
		}
		states = append(states, psi)
	}
	// The Bell states are an orthonormal basis.
	for i, a := range states {
		for j, b := range states {
			var want complex128
			if i == j {
				want = 1
			}
			if ip := inner(a, b); cmplx.Abs(ip-want) > tol {
				t.Fatalf("%d %d %v", i, j, ip)
			}
		}
	}
	if !gonum.CEqual(Singlet(), states[PsiMinus]) {
		t.Fatalf("%v", Singlet())
	}
	if _, err := BellState(4); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("%+v", err)
	}
}

func TestBlochState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ax, ay, az float64
		purify     bool
		purity     float64
	}{
		{ax: 0, ay: 0, az: 1, purity: 1},
		{ax: 0, ay: 0, az: 0, purity: 0.5},
		{ax: 0.3, ay: 0.4, az: 0, purity: 0.5 * (1 + 0.25)},
		{ax: 0.3, ay: 0.4, az: 0, purify: true, purity: 1},
		{ax: -2, ay: 1, az: 2, purify: true, purity: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v %v %t", test.ax, test.ay, test.az, test.purify), func(t *testing.T) {
			t.Parallel()
			rho, err := BlochState(test.ax, test.ay, test.az, test.purify)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if tr := trace(rho); cmplx.Abs(tr-1) > tol {
				t.Fatalf("%v", tr)
			}
			if p := trace(mul(rho, rho)); cmplx.Abs(p-complex(test.purity, 0)) > tol {
				t.Fatalf("%v, expected %f", p, test.purity)
			}
			if !mat.FromDense(rho).IsHermitian(tol) {
				t.Fatalf("%v", rho)
			}
		})
	}

	if _, err := BlochState(0, 0, 0, true); !errors.Is(err, mat.ErrZeroNorm) {
		t.Fatalf("%+v", err)
	}
}

func TestRandomStates(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewPCG(3, 4))

	psi, err := RandomPsi(rnd, 5)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if n := inner(psi, psi); cmplx.Abs(n-1) > tol {
		t.Fatalf("%v", n)
	}

	rho, err := RandomRho(rnd, 4)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if tr := trace(rho); cmplx.Abs(tr-1) > tol {
		t.Fatalf("%v", tr)
	}
	if !mat.FromDense(rho).IsHermitian(tol) {
		t.Fatalf("%v", rho)
	}
	// Positive operators have non-negative expectation values.
	for range 16 {
		v, err := RandomPsi(rnd, 4)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if e := inner(v, mul(rho, v)); real(e) < -tol {
			t.Fatalf("%v", e)
		}
	}

	product, err := RandomProductState(rnd, 3)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if r, c := product.Dims(); r != 8 || c != 1 {
		t.Fatalf("%d %d", r, c)
	}
	if n := inner(product, product); cmplx.Abs(n-1) > tol {
		t.Fatalf("%v", n)
	}

	for _, f := range []func() error{
		func() error { _, err := RandomPsi(rnd, 0); return err },
		func() error { _, err := RandomRho(rnd, -1); return err },
		func() error { _, err := RandomProductState(rnd, 0); return err },
	} {
		if err := f(); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%+v", err)
		}
	}
}

func TestNeelState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n   int
		idx int
	}{
		{n: 1, idx: 0b0},
		{n: 2, idx: 0b01},
		{n: 3, idx: 0b010},
		{n: 4, idx: 0b0101},
		{n: 5, idx: 0b01010},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.n), func(t *testing.T) {
			t.Parallel()
			psi, err := NeelState(test.n)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if r, _ := psi.Dims(); r != 1<<test.n {
				t.Fatalf("%d", r)
			}
			if psi.At(test.idx, 0) != 1 {
				t.Fatalf("%v", psi.At(test.idx, 0))
			}
		})
	}
}

func TestSingletPairs(t *testing.T) {
	t.Parallel()
	psi, err := SingletPairs(4)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	// |01-10> ⊗ |01-10> / 2.
	expected := map[int]complex128{0b0101: 0.5, 0b0110: -0.5, 0b1001: -0.5, 0b1010: 0.5}
	for i := range 16 {
		if v := psi.At(i, 0); cmplx.Abs(v-expected[i]) > tol {
			t.Fatalf("%04b %v, expected %v", i, v, expected[i])
		}
	}
	for _, n := range []int{0, 3} {
		if _, err := SingletPairs(n); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%d %+v", n, err)
		}
	}
}

func TestWernerState(t *testing.T) {
	t.Parallel()
	for _, p := range []float64{0, 0.3, 1} {
		rho, err := WernerState(p)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if tr := trace(rho); cmplx.Abs(tr-1) > tol {
			t.Fatalf("%v %v", p, tr)
		}
		// The singlet fidelity is p + (1-p)/4.
		if f := inner(Singlet(), mul(rho, Singlet())); cmplx.Abs(f-complex(p+(1-p)/4, 0)) > tol {
			t.Fatalf("%v %v", p, f)
		}
	}
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := WernerState(p); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%v %+v", p, err)
		}
	}
}

func TestGHZState(t *testing.T) {
	t.Parallel()
	psi, err := GHZState(3)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for i := range 8 {
		var want complex128
		if i == 0 || i == 7 {
			want = 1 / math.Sqrt2
		}
		if cmplx.Abs(psi.At(i, 0)-want) > tol {
			t.Fatalf("%d %v", i, psi.At(i, 0))
		}
	}
}

// inner returns <a|b>.
func inner(a, b *gonum.CDense) complex128 {
	r, _ := a.Dims()
	var ip complex128
	for i := range r {
		ip += cmplx.Conj(a.At(i, 0)) * b.At(i, 0)
	}
	return ip
}

func trace(a *gonum.CDense) complex128 {
	r, _ := a.Dims()
	var tr complex128
	for i := range r {
		tr += a.At(i, i)
	}
	return tr
}

func mul(a, b *gonum.CDense) *gonum.CDense {
	r, k := a.Dims()
	_, c := b.Dims()
	p := gonum.NewCDense(r, c, nil)
	for i := range r {
		for j := range c {
			var v complex128
			for l := range k {
				v += a.At(i, l) * b.At(l, j)
			}
			p.Set(i, j, v)
		}
	}
	return p
}
