// Package mpo builds spin chain Hamiltonians as matrix product operators.
//
// References:
//   - The density-matrix renormalization group in the age of matrix product states, Ulrich Schollwock
package mpo

import (
	"fmt"

	"github.com/fumin/tensor"

	"github.com/fumin/quijy/mat"
)

const (
	// leftAxis is the axis of b_{l-1} in Figure 35.
	leftAxis  = 0
	rightAxis = 1
	upAxis    = 2
	downAxis  = 3
)

// pauli returns a fresh copy of the Pauli matrix p, one of "i", "x", "y", "z".
func pauli(p string) [][]complex64 {
	switch p {
	case "i":
		return [][]complex64{
			{1, 0},
			{0, 1},
		}
	case "x":
		return [][]complex64{
			{0, 1},
			{1, 0},
		}
	case "y":
		return [][]complex64{
			{0, -1i},
			{1i, 0},
		}
	case "z":
		return [][]complex64{
			{1, 0},
			{0, -1},
		}
	}
	panic(p)
}

// Heisenberg returns the MPO of the open Heisenberg chain of n spins
//
//	H = Σ_i (jx X_i X_{i+1} + jy Y_i Y_{i+1} + jz Z_i Z_{i+1}) - bz Σ_i Z_i
//
// Each site is a tensor of shape {left, right, up, down}.
func Heisenberg(n int, jx, jy, jz, bz float32) []*tensor.Dense {
	if n < 1 {
		panic(fmt.Sprintf("%d spins", n))
	}
	mul := func(c float32, p string) [][]complex64 {
		return tensor.T2(pauli(p)).Mul(complex(c, 0)).ToSlice2()
	}
	zero := mul(0, "i")
	// The last bond index means no operator has been placed yet, and the first means all couplings are complete.
	w := tensor.T4([][][][]complex64{
		{pauli("i"), zero, zero, zero, zero},
		{pauli("x"), zero, zero, zero, zero},
		{pauli("y"), zero, zero, zero, zero},
		{pauli("z"), zero, zero, zero, zero},
		{mul(-bz, "z"), mul(jx, "x"), mul(jy, "y"), mul(jz, "z"), pauli("i")},
	})
	return newMPO(w, n)
}

func newMPO(w *tensor.Dense, n int) []*tensor.Dense {
	d0, d1, d2, d3 := w.Shape()[0], w.Shape()[1], w.Shape()[2], w.Shape()[3]

	// A single site is w[-1, 0].
	if n == 1 {
		return []*tensor.Dense{w.Slice([][2]int{{d0 - 1, d0}, {0, 1}, {0, d2}, {0, d3}})}
	}

	mpo := make([]*tensor.Dense, 0, n)

	// First MPO is w[-1].
	mpo = append(mpo, w.Slice([][2]int{{d0 - 1, d0}, {0, d1}, {0, d2}, {0, d3}}))

	for range n - 2 {
		mpo = append(mpo, w)
	}

	// Last MPO is w[:, 0].
	mpo = append(mpo, w.Slice([][2]int{{0, d0}, {0, 1}, {0, d2}, {0, d3}}))

	return mpo
}

// Contract multiplies out the MPO into the full operator.
// Site 0 is the leftmost Kronecker factor.
func Contract(mpo []*tensor.Dense) *mat.COO {
	// acc is of shape {bond, up, down}, the operator on the sites contracted so far, indexed by the open bond.
	acc := ones(tensor.Zeros(1), 1, 1, 1)
	buf := tensor.Zeros(1)
	for _, w := range mpo {
		as, ws := acc.Shape(), w.Shape()

		// p is of shape {accUp, accDown, mpoRight, mpoUp, mpoDown}.
		p := tensor.Contract(buf, acc, w, [][2]int{{0, leftAxis}})

		// Reorder to {mpoRight, accUp, mpoUp, accDown, mpoDown}, so that earlier sites are more significant.
		next := resetCopy(tensor.Zeros(1), p.Transpose(2, 0, 3, 1, 4))
		acc = next.Reshape(ws[rightAxis], as[1]*ws[upAxis], as[2]*ws[downAxis])
	}

	s := acc.Shape()
	if s[0] != 1 {
		panic(fmt.Sprintf("%#v", s))
	}
	m := mat.Zeros(s[1], s[2])
	for i := range s[1] {
		for j := range s[2] {
			m.Append(i, j, complex128(acc.At(0, i, j)))
		}
	}
	return m
}

func resetCopy(dst, src *tensor.Dense) *tensor.Dense {
	shape := src.Shape()
	zeroDigit := make([]int, len(shape))
	dst.Reset(shape...).Set(zeroDigit, src)
	return dst
}

func ones(t *tensor.Dense, shape ...int) *tensor.Dense {
	t.Reset(shape...)
	for ijk := range t.All() {
		t.SetAt(ijk, 1)
	}
	return t
}
