package mat

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Kron returns the Kronecker product ops[0] ⊗ ops[1] ⊗ ... of its arguments.
// The product of no operators is the 1x1 identity.
func Kron(ops ...*COO) *COO {
	k := Eye(1)
	for _, op := range ops {
		k.Kron(op)
	}
	return k
}

// KronPow returns op ⊗ op ⊗ ... with p factors.
func KronPow(op *COO, p int) *COO {
	if p < 0 {
		panic(fmt.Sprintf("negative power %d", p))
	}
	k := Eye(1)
	for range p {
		k.Kron(op)
	}
	return k
}

// EyePad places a copy of op at each site in inds of the tensor space with local dimensions dims,
// with identity on all other sites.
// Site 0 is the leftmost, most significant, Kronecker factor.
// For example EyePad(X, []int{2, 2, 2}, 0, 2) is X ⊗ I ⊗ X.
func EyePad(op *COO, dims []int, inds ...int) (*COO, error) {
	if err := checkDims(dims); err != nil {
		return nil, errors.Wrap(err, "")
	}
	if len(inds) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no sites")
	}
	if !op.IsSquare() {
		return nil, errors.Wrapf(ErrInvalidArgument, "operator %s not square", op.shapeString())
	}
	at := make([]bool, len(dims))
	for _, i := range inds {
		if i < 0 || i >= len(dims) {
			return nil, errors.Wrapf(ErrInvalidArgument, "site %d out of %d", i, len(dims))
		}
		if at[i] {
			return nil, errors.Wrapf(ErrInvalidArgument, "site %d repeated", i)
		}
		if op.rows != dims[i] {
			return nil, errors.Wrapf(ErrInvalidArgument, "operator %s at site %d of dimension %d", op.shapeString(), i, dims[i])
		}
		at[i] = true
	}

	// Runs of identities are merged into a single factor.
	padded := Eye(1)
	eye := 1
	for i, d := range dims {
		if !at[i] {
			eye *= d
			continue
		}
		padded.Kron(Eye(eye))
		padded.Kron(op)
		eye = 1
	}
	padded.Kron(Eye(eye))
	return padded, nil
}

// Embed places op acting jointly on the contiguous sites, with identity on all other sites.
// The dimension of op must equal the product of the dimensions of the sites.
// For example Embed(sds, []int{2, 2, 2, 2}, 1, 2) is I ⊗ sds ⊗ I with sds acting on sites 1 and 2.
func Embed(op *COO, dims []int, sites ...int) (*COO, error) {
	if err := checkDims(dims); err != nil {
		return nil, errors.Wrap(err, "")
	}
	if len(sites) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no sites")
	}
	if !op.IsSquare() {
		return nil, errors.Wrapf(ErrInvalidArgument, "operator %s not square", op.shapeString())
	}
	first, last := sites[0], sites[len(sites)-1]
	if first < 0 || last >= len(dims) {
		return nil, errors.Wrapf(ErrInvalidArgument, "sites %v out of %d", sites, len(dims))
	}
	for k, s := range sites {
		if s != first+k {
			return nil, errors.Wrapf(ErrInvalidArgument, "sites %v not contiguous", sites)
		}
	}
	if d := prod(dims[first : last+1]); op.rows != d {
		return nil, errors.Wrapf(ErrInvalidArgument, "operator %s on sites %v of dimension %d", op.shapeString(), sites, d)
	}

	embedded := Eye(prod(dims[:first]))
	embedded.Kron(op)
	embedded.Kron(Eye(prod(dims[last+1:])))
	return embedded, nil
}

func checkDims(dims []int) error {
	if len(dims) == 0 {
		return errors.Wrap(ErrInvalidArgument, "no dimensions")
	}
	if i := slices.IndexFunc(dims, func(d int) bool { return d < 1 }); i >= 0 {
		return errors.Wrapf(ErrInvalidArgument, "dimension %d at site %d", dims[i], i)
	}
	return nil
}

func prod(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
