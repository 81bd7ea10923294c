package mpo_test

import (
	"fmt"
	"testing"

	"github.com/fumin/tensor"

	"github.com/fumin/quijy"
	"github.com/fumin/quijy/mat"
	"github.com/fumin/quijy/mpo"
)

func TestHeisenberg(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n              int
		jx, jy, jz, bz float32
	}{
		{n: 1, jx: 1, jy: 1, jz: 1, bz: 0.5},
		{n: 2, jx: 1, jy: 1, jz: 1, bz: 0},
		{n: 3, jx: 0.5, jy: -1, jz: 2, bz: 0.25},
		{n: 5, jx: 1, jy: 1, jz: 1, bz: -1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#v", test), func(t *testing.T) {
			t.Parallel()
			w := mpo.Heisenberg(test.n, test.jx, test.jy, test.jz, test.bz)
			if len(w) != test.n {
				t.Fatalf("%d, expected %d", len(w), test.n)
			}
			h := mpo.Contract(w)

			opt := quijy.NewHeisenbergOptions().
				J(float64(test.jx), float64(test.jy), float64(test.jz)).
				Bz(float64(test.bz))
			expected, err := quijy.HamHeisCOO(test.n, opt)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if !h.EqualApprox(expected, 1e-5) {
				t.Fatalf("%s, expected %s", h, expected)
			}
		})
	}
}

func TestContractKron(t *testing.T) {
	t.Parallel()
	// A bond dimension one MPO is a plain Kronecker product.
	x := [][]complex64{{0, 1}, {1, 0}}
	z := [][]complex64{{1, 0}, {0, -1}}
	w := []*tensor.Dense{
		tensor.T4([][][][]complex64{{x}}),
		tensor.T4([][][][]complex64{{z}}),
	}
	expected := mat.Kron(quijy.Sig(quijy.X), quijy.Sig(quijy.Z))
	if h := mpo.Contract(w); !h.Equal(expected) {
		t.Fatalf("%s, expected %s", h, expected)
	}
}
