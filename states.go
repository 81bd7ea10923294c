package quijy

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	gonum "gonum.org/v1/gonum/mat"

	"github.com/fumin/quijy/mat"
)

// BellKind names one of the four Bell states.
type BellKind int

const (
	PhiPlus BellKind = iota
	PhiMinus
	PsiPlus
	// PsiMinus is the singlet.
	PsiMinus
)

func (k BellKind) String() string {
	switch k {
	case PhiPlus:
		return "phi+"
	case PhiMinus:
		return "phi-"
	case PsiPlus:
		return "psi+"
	case PsiMinus:
		return "psi-"
	default:
		return fmt.Sprintf("BellKind(%d)", int(k))
	}
}

// BasisVec returns the unit ket pointing in direction dir of a space of dimension dim.
func BasisVec(dir, dim int) (*gonum.CDense, error) {
	if dir < 0 || dir >= dim {
		return nil, errors.Wrapf(ErrInvalidArgument, "direction %d of %d", dir, dim)
	}
	ket := gonum.NewCDense(dim, 1, nil)
	ket.Set(dir, 0, 1)
	return ket, nil
}

func BellState(k BellKind) (*gonum.CDense, error) {
	var amps []complex128
	switch k {
	case PhiPlus:
		amps = []complex128{1, 0, 0, 1}
	case PhiMinus:
		amps = []complex128{1, 0, 0, -1}
	case PsiPlus:
		amps = []complex128{0, 1, 1, 0}
	case PsiMinus:
		amps = []complex128{0, 1, -1, 0}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "%v", k)
	}
	for i := range amps {
		amps[i] /= math.Sqrt2
	}
	return gonum.NewCDense(4, 1, amps), nil
}

// Singlet returns the Bell state psi-.
func Singlet() *gonum.CDense {
	psi, err := BellState(PsiMinus)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return psi
}

// BlochState returns the single qubit density matrix with Bloch vector (ax, ay, az).
// If purify is set, the Bloch vector is scaled to unit length, giving a pure state.
func BlochState(ax, ay, az float64, purify bool) (*gonum.CDense, error) {
	if purify {
		norm := math.Sqrt(ax*ax + ay*ay + az*az)
		if norm == 0 {
			return nil, errors.Wrap(mat.ErrZeroNorm, "bloch vector")
		}
		ax, ay, az = ax/norm, ay/norm, az/norm
	}
	rho := Sig(I)
	rho.Add(complex(ax, 0), Sig(X))
	rho.Add(complex(ay, 0), Sig(Y))
	rho.Add(complex(az, 0), Sig(Z))
	rho.Scale(0.5)
	return rho.Dense(), nil
}

// RandomPsi returns a normalized ket of dimension n with random coefficients.
func RandomPsi(rnd *rand.Rand, n int) (*gonum.CDense, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "dimension %d", n)
	}
	psi := gonum.NewCDense(n, 1, randComplex(rnd, n))
	if err := mat.Nrmlz(psi); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return psi, nil
}

// RandomRho returns a random density matrix of dimension n.
// It is Hermitian, positive and has unit trace, with no other special properties.
func RandomRho(rnd *rand.Rand, n int) (*gonum.CDense, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "dimension %d", n)
	}
	a := gonum.NewCDense(n, n, randComplex(rnd, n*n))

	// b = a + a^H is Hermitian, so b^2 is positive.
	b := gonum.NewCDense(n, n, nil)
	for i := range n {
		for j := range n {
			b.Set(i, j, a.At(i, j)+cmplx.Conj(a.At(j, i)))
		}
	}
	rho := gonum.NewCDense(n, n, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, b.RawCMatrix(), b.RawCMatrix(), 0, rho.RawCMatrix())

	if err := mat.Nrmlz(rho); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rho, nil
}

// RandomProductState returns the ket of n independent qubits, each uniformly distributed on the Bloch sphere.
func RandomProductState(rnd *rand.Rand, n int) (*gonum.CDense, error) {
	if n < 1 || n > MaxSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d qubits", n)
	}
	qubits := make([]*mat.COO, 0, n)
	for range n {
		phi := 2 * math.Pi * rnd.Float64()
		theta := math.Acos(2*rnd.Float64() - 1)
		qubits = append(qubits, mat.M([][]complex128{
			{complex(math.Cos(theta/2), 0)},
			{complex(math.Sin(theta/2), 0) * cmplx.Exp(complex(0, phi))},
		}))
	}
	return mat.Kron(qubits...).Dense(), nil
}

// NeelState returns the antiferromagnetic basis state 0101... of n spins.
// For odd n the last spin is 0.
func NeelState(n int) (*gonum.CDense, error) {
	if n < 1 || n > MaxSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d spins", n)
	}
	var idx int
	for site := range n / 2 * 2 {
		if site%2 == 1 {
			idx |= 1 << (n - 1 - site)
		}
	}
	ket, err := BasisVec(idx, 1<<n)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return ket, nil
}

// SingletPairs returns n/2 singlets on consecutive pairs of spins.
func SingletPairs(n int) (*gonum.CDense, error) {
	if n < 2 || n%2 != 0 || n > MaxSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d spins", n)
	}
	singlet := mat.FromDense(Singlet())
	return mat.KronPow(singlet, n/2).Dense(), nil
}

// WernerState returns p|psi-><psi-| + (1-p) I/4 for 0 <= p <= 1.
func WernerState(p float64) (*gonum.CDense, error) {
	if !(p >= 0 && p <= 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "probability %v", p)
	}
	psi := Singlet()
	rho := gonum.NewCDense(4, 4, nil)
	for i := range 4 {
		rho.Set(i, i, complex((1-p)/4, 0))
	}
	cblas128.Gemm(blas.NoTrans, blas.ConjTrans, complex(p, 0), psi.RawCMatrix(), psi.RawCMatrix(), 1, rho.RawCMatrix())
	return rho, nil
}

// GHZState returns (|0...0> + |1...1>)/√2 of n spins.
func GHZState(n int) (*gonum.CDense, error) {
	if n < 1 || n > MaxSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d spins", n)
	}
	dim := 1 << n
	ghz := gonum.NewCDense(dim, 1, nil)
	ghz.Set(0, 0, 1/math.Sqrt2)
	ghz.Set(dim-1, 0, ghz.At(dim-1, 0)+1/math.Sqrt2)
	return ghz, nil
}

// randComplex returns n numbers with real and imaginary parts uniform in [-1, 1).
func randComplex(rnd *rand.Rand, n int) []complex128 {
	vs := make([]complex128, n)
	for i := range vs {
		vs[i] = complex(2*rnd.Float64()-1, 2*rnd.Float64()-1)
	}
	return vs
}
