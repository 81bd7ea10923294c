// Package quijy generates quantum objects: states, density matrices and spin chain Hamiltonians.
//
// Site 0 of a chain is the leftmost factor of every Kronecker product.
package quijy

import (
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
	gonum "gonum.org/v1/gonum/mat"

	"github.com/fumin/quijy/mat"
)

const (
	// MaxSites is the largest chain for which sparse operators are assembled.
	MaxSites = 24
	// MaxDenseSites is the largest chain returned in dense form, about 1GB of complex128.
	MaxDenseSites = 13
)

// HeisenbergOptions are options for the Heisenberg Hamiltonian.
type HeisenbergOptions struct {
	jx, jy, jz float64
	bz         float64
	periodic   bool
	sparse     bool
}

// NewHeisenbergOptions returns the isotropic antiferromagnetic open chain without field, in dense form.
func NewHeisenbergOptions() HeisenbergOptions {
	opt := HeisenbergOptions{}
	opt.jx, opt.jy, opt.jz = 1, 1, 1
	return opt
}

// J sets the coupling constants, with the convention that positive is antiferromagnetic.
func (opt HeisenbergOptions) J(jx, jy, jz float64) HeisenbergOptions {
	opt.jx, opt.jy, opt.jz = jx, jy, jz
	return opt
}

// Bz sets the magnetic field along z.
func (opt HeisenbergOptions) Bz(bz float64) HeisenbergOptions {
	opt.bz = bz
	return opt
}

// Periodic sets whether the first and last spins are coupled.
func (opt HeisenbergOptions) Periodic(periodic bool) HeisenbergOptions {
	opt.periodic = periodic
	return opt
}

// Sparse sets whether HamHeis returns a *mat.COO instead of a dense matrix.
func (opt HeisenbergOptions) Sparse(sparse bool) HeisenbergOptions {
	opt.sparse = sparse
	return opt
}

// Key identifies the Hamiltonian of n spins built with opt, regardless of its output form.
func (opt HeisenbergOptions) Key(n int) string {
	return fmt.Sprintf("heis n=%d jx=%g jy=%g jz=%g bz=%g periodic=%t", n, opt.jx, opt.jy, opt.jz, opt.bz, opt.periodic)
}

// HamHeis constructs the spin 1/2 Heisenberg Hamiltonian of n spins
//
//	H = Σ_i (jx X_i X_{i+1} + jy Y_i Y_{i+1} + jz Z_i Z_{i+1}) - bz Σ_i Z_i
//
// The result is a *mat.COO if opt is sparse, and a *gonum.CDense otherwise.
// Periodic chains of one or two spins have no extra boundary bond, since the pair (0, n-1) is already coupled.
// Only the first of options is used.
func HamHeis(n int, options ...HeisenbergOptions) (gonum.CMatrix, error) {
	opt := NewHeisenbergOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	if !opt.sparse && n > MaxDenseSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d spins exceed %d in dense form", n, MaxDenseSites)
	}

	ham, err := hamHeis(n, opt)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if opt.sparse {
		return ham, nil
	}
	return ham.Dense(), nil
}

// HamHeisCOO is HamHeis that always returns the sparse form.
// Only the first of options is used.
func HamHeisCOO(n int, options ...HeisenbergOptions) (*mat.COO, error) {
	opt := NewHeisenbergOptions()
	if len(options) > 0 {
		opt = options[0]
	}

	ham, err := hamHeis(n, opt)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return ham, nil
}

func hamHeis(n int, opt HeisenbergOptions) (*mat.COO, error) {
	if n < 1 || n > MaxSites {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d spins", n)
	}
	for _, j := range []float64{opt.jx, opt.jy, opt.jz, opt.bz} {
		if math.IsNaN(j) || math.IsInf(j, 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "coupling %v", j)
		}
	}
	dims := slices.Repeat([]int{2}, n)
	jx, jy, jz, bz := complex(opt.jx, 0), complex(opt.jy, 0), complex(opt.jz, 0), complex(opt.bz, 0)
	x, y, z := Sig(X), Sig(Y), Sig(Z)

	// sds is the coupling of a spin with its right neighbour, plus the field on the spin itself.
	sds := mat.Zeros(4, 4)
	sds.Add(jx, mat.Kron(x, x))
	sds.Add(jy, mat.Kron(y, y))
	sds.Add(jz, mat.Kron(z, z))
	sds.Add(-bz, mat.Kron(z, Sig(I)))

	// Begin with the field on the last spin, which has no right neighbour.
	field := z.Clone()
	field.Scale(-bz)
	ham, err := mat.EyePad(field, dims, n-1)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for i := range n - 1 {
		bond, err := mat.Embed(sds, dims, i, i+1)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", i))
		}
		ham.Add(1, bond)
	}

	if opt.periodic && n > 2 {
		boundary := []struct {
			j complex128
			s *mat.COO
		}{{j: jx, s: x}, {j: jy, s: y}, {j: jz, s: z}}
		for _, b := range boundary {
			bond, err := mat.EyePad(b.s, dims, 0, n-1)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			ham.Add(b.j, bond)
		}
	}

	return ham, nil
}
