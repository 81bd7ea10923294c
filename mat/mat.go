// Package mat implements the sparse and dense operator algebra used to assemble quantum objects.
//
// Operators are stored as COO matrices of complex128 values, sorted in row-major order.
// Both *COO and gonum's *mat.CDense satisfy mat.CMatrix, and Dense and FromDense convert between the two.
package mat

import (
	"cmp"
	"fmt"
	"iter"
	"math/cmplx"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidArgument is returned when an operator or its placement is malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrZeroNorm is returned when normalizing a state whose norm or trace vanishes.
	ErrZeroNorm = errors.New("zero norm")
)

type vRowCol struct {
	v   complex128
	row int
	col int
}

// COO is a sparse matrix in coordinate format.
// Data is kept sorted row-major without explicit zeros or duplicate coordinates.
type COO struct {
	rows int
	cols int
	Data []vRowCol
}

var _ mat.CMatrix = (*COO)(nil)

func M(dense [][]complex128) *COO {
	m := &COO{rows: len(dense), Data: make([]vRowCol, 0)}
	if len(dense) > 0 {
		m.cols = len(dense[0])
	}
	for i, row := range dense {
		if len(row) != m.cols {
			panic(fmt.Sprintf("ragged row %d: %d, expected %d", i, len(row), m.cols))
		}
		for j, v := range row {
			if v == 0 {
				continue
			}
			m.Data = append(m.Data, vRowCol{v: v, row: i, col: j})
		}
	}
	return m
}

func Zeros(rows, cols int) *COO {
	return &COO{rows: rows, cols: cols, Data: make([]vRowCol, 0)}
}

// Eye returns the n by n identity.
func Eye(n int) *COO {
	m := Zeros(n, n)
	m.Data = slices.Grow(m.Data, n)
	for i := range n {
		m.Data = append(m.Data, vRowCol{v: 1, row: i, col: i})
	}
	return m
}

func (m *COO) Rows() int { return m.rows }
func (m *COO) Cols() int { return m.cols }
func (m *COO) Dims() (int, int) { return m.rows, m.cols }
func (m *COO) NumNonZero() int { return len(m.Data) }
func (m *COO) H() mat.CMatrix { return m.ConjTranspose() }
func (m *COO) T() mat.CMatrix { return m.Transpose() }
func (m *COO) IsSquare() bool { return m.rows == m.cols }
func (m *COO) Clone() *COO { return &COO{rows: m.rows, cols: m.cols, Data: slices.Clone(m.Data)} }
func (m *COO) shapeString() string { return fmt.Sprintf("%dx%d", m.rows, m.cols) }

// At returns the element at row i and column j.
func (m *COO) At(i, j int) complex128 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
	k, ok := slices.BinarySearchFunc(m.Data, vRowCol{row: i, col: j}, rowMajor)
	if !ok {
		return 0
	}
	return m.Data[k].v
}

// All iterates over the non-zero elements in row-major order.
func (m *COO) All() iter.Seq2[[2]int, complex128] {
	return func(yield func([2]int, complex128) bool) {
		for _, v := range m.Data {
			if !yield([2]int{v.row, v.col}, v.v) {
				return
			}
		}
	}
}

// Append appends an element after all existing ones.
// Elements must be appended in row-major order.
func (m *COO) Append(i, j int, v complex128) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("%d %d out of %s", i, j, m.shapeString()))
	}
	vrc := vRowCol{v: v, row: i, col: j}
	if n := len(m.Data); n > 0 && rowMajor(m.Data[n-1], vrc) >= 0 {
		panic(fmt.Sprintf("%d %d appended after %d %d", i, j, m.Data[n-1].row, m.Data[n-1].col))
	}
	if v == 0 {
		return
	}
	m.Data = append(m.Data, vrc)
}

// Transpose returns the transpose of m without conjugation.
func (m *COO) Transpose() *COO {
	t := &COO{rows: m.cols, cols: m.rows, Data: make([]vRowCol, 0, len(m.Data))}
	for _, v := range m.Data {
		t.Data = append(t.Data, vRowCol{v: v.v, row: v.col, col: v.row})
	}
	slices.SortFunc(t.Data, rowMajor)
	return t
}

// ConjTranspose returns the conjugate transpose of m.
func (m *COO) ConjTranspose() *COO {
	h := &COO{rows: m.cols, cols: m.rows, Data: make([]vRowCol, 0, len(m.Data))}
	for _, v := range m.Data {
		h.Data = append(h.Data, vRowCol{v: cmplx.Conj(v.v), row: v.col, col: v.row})
	}
	slices.SortFunc(h.Data, rowMajor)
	return h
}

// Scale multiplies every element by c.
func (m *COO) Scale(c complex128) {
	if c == 0 {
		m.Data = m.Data[:0]
		return
	}
	for i := range m.Data {
		m.Data[i].v *= c
	}
}

func (a *COO) Equal(b *COO) bool {
	if a.rows != b.rows {
		return false
	}
	if a.cols != b.cols {
		return false
	}
	return slices.Equal(a.Data, b.Data)
}

// EqualApprox reports whether a and b have the same shape and all their elements are within tol.
func (a *COO) EqualApprox(b *COO, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	ok := true
	merge(a.Data, b.Data, func(row, col int, av, bv complex128) bool {
		if cmplx.Abs(av-bv) > tol {
			ok = false
		}
		return ok
	})
	return ok
}

// IsHermitian reports whether m equals its own conjugate transpose within tol.
func (m *COO) IsHermitian(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	return m.EqualApprox(m.ConjTranspose(), tol)
}

// Add performs a += c*b.
func (a *COO) Add(c complex128, b *COO) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("wrong dimensions %s %s", a.shapeString(), b.shapeString()))
	}
	if c == 0 {
		return
	}

	sum := make([]vRowCol, 0, len(a.Data)+len(b.Data))
	merge(a.Data, b.Data, func(row, col int, av, bv complex128) bool {
		if v := av + c*bv; v != 0 {
			sum = append(sum, vRowCol{v: v, row: row, col: col})
		}
		return true
	})
	a.Data = sum
}

// Kron replaces a with the Kronecker product a ⊗ b.
func (a *COO) Kron(b *COO) {
	rows := a.rows * b.rows
	cols := a.cols * b.cols

	data := make([]vRowCol, 0, len(a.Data)*len(b.Data))
	for _, av := range a.Data {
		for _, bv := range b.Data {
			ky := av.row*b.rows + bv.row
			kx := av.col*b.cols + bv.col
			data = append(data, vRowCol{v: av.v * bv.v, row: ky, col: kx})
		}
	}
	data = slices.DeleteFunc(data, func(v vRowCol) bool {
		return v.v == 0
	})
	slices.SortFunc(data, rowMajor)

	a.rows, a.cols = rows, cols
	a.Data = data
}

func (m *COO) String() string {
	lines := []string{}
	k := 0
	for i := 0; i < m.rows; i++ {
		cs := []string{}
		for j := 0; j < m.cols; j++ {
			var v complex128
			if k < len(m.Data) && m.Data[k].row == i && m.Data[k].col == j {
				v = m.Data[k].v
				k++
			}
			switch {
			case imag(v) == 0:
				cs = append(cs, format(real(v)))
			case real(v) == 0:
				cs = append(cs, format(imag(v))+"i")
			default:
				cs = append(cs, format(real(v))+"+"+format(imag(v))+"i")
			}
		}
		l := strings.Join(cs, "\t")
		lines = append(lines, l)
	}
	return strings.Join(lines, "\n")
}

// merge walks the union of the coordinates of two row-major sorted slices.
func merge(a, b []vRowCol, f func(row, col int, av, bv complex128) bool) {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var c int
		switch {
		case i == len(a):
			c = 1
		case j == len(b):
			c = -1
		default:
			c = rowMajor(a[i], b[j])
		}

		var ok bool
		switch {
		case c < 0:
			ok = f(a[i].row, a[i].col, a[i].v, 0)
			i++
		case c > 0:
			ok = f(b[j].row, b[j].col, 0, b[j].v)
			j++
		default:
			ok = f(a[i].row, a[i].col, a[i].v, b[j].v)
			i++
			j++
		}
		if !ok {
			return
		}
	}
}

func rowMajor(a, b vRowCol) int {
	if c := cmp.Compare(a.row, b.row); c != 0 {
		return c
	}
	return cmp.Compare(a.col, b.col)
}

func format(v float64) string {
	// If v is 0 or -0, return "0" immediately to avoid returning "-0".
	if v == 0 {
		return " 0"
	}

	s := fmt.Sprintf("%v", v)

	// Add a space before non-negative numbers to align with other negative numbers in the same column.
	if v >= 0 {
		s = " " + s
	}

	return s
}
