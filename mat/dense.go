package mat

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense returns the dense form of m.
func (m *COO) Dense() *mat.CDense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.CDense{}
	}
	d := mat.NewCDense(m.rows, m.cols, nil)
	for _, v := range m.Data {
		d.Set(v.row, v.col, v.v)
	}
	return d
}

// Dense converts any complex matrix to its dense form.
func Dense(a mat.CMatrix) *mat.CDense {
	if m, ok := a.(*COO); ok {
		return m.Dense()
	}
	r, c := a.Dims()
	d := mat.NewCDense(r, c, nil)
	for i := range r {
		for j := range c {
			d.Set(i, j, a.At(i, j))
		}
	}
	return d
}

// FromDense converts any complex matrix to its sparse form.
func FromDense(a mat.CMatrix) *COO {
	if m, ok := a.(*COO); ok {
		return m.Clone()
	}
	r, c := a.Dims()
	m := Zeros(r, c)
	for i := range r {
		for j := range c {
			m.Append(i, j, a.At(i, j))
		}
	}
	return m
}

// Nrmlz normalizes a state in place.
// A column vector is divided by its 2-norm, and a square operator by its trace.
func Nrmlz(a *mat.CDense) error {
	r, c := a.Dims()
	var norm complex128
	switch {
	case c == 1:
		var sum float64
		for i := range r {
			v := a.At(i, 0)
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
		norm = complex(math.Sqrt(sum), 0)
	case r == c:
		for i := range r {
			norm += a.At(i, i)
		}
	default:
		return errors.Wrapf(ErrInvalidArgument, "%dx%d neither ket nor operator", r, c)
	}
	if cmplx.Abs(norm) == 0 {
		return errors.Wrapf(ErrZeroNorm, "%dx%d", r, c)
	}

	for i := range r {
		for j := range c {
			a.Set(i, j, a.At(i, j)/norm)
		}
	}
	return nil
}
