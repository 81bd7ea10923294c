package quijy_test

import (
	"fmt"
	"log"

	"github.com/fumin/quijy"
	"github.com/fumin/quijy/mat"
)

func Example() {
	// Create a periodic Heisenberg ring of n spins in a field bz.
	const n = 3
	const bz = 0.5
	opt := quijy.NewHeisenbergOptions().Bz(bz).Periodic(true).Sparse(true)
	h, err := quijy.HamHeis(n, opt)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	rows, cols := h.Dims()
	fmt.Printf("Dimension %dx%d\n", rows, cols)
	fmt.Printf("Hermitian %t\n", h.(*mat.COO).IsHermitian(1e-12))
	// |000> has three aligned bonds and three spins along the field.
	fmt.Printf("<000|H|000> %.1f\n", real(h.At(0, 0)))

	// Output:
	// Dimension 8x8
	// Hermitian true
	// <000|H|000> 1.5
}
