package quijy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/quijy/mat"
)

// ErrInvalidArgument is returned for malformed inputs.
var ErrInvalidArgument = mat.ErrInvalidArgument

// Pauli names one of the single spin-1/2 operators.
type Pauli int

const (
	I Pauli = iota
	X
	Y
	Z
)

func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Pauli(%d)", int(p))
	}
}

// ParsePauli accepts i, x, y, z in either case, or their indices 0 to 3.
func ParsePauli(s string) (Pauli, error) {
	switch strings.ToLower(s) {
	case "i", "0":
		return I, nil
	case "x", "1":
		return X, nil
	case "y", "2":
		return Y, nil
	case "z", "3":
		return Z, nil
	}
	return -1, errors.Wrapf(ErrInvalidArgument, "pauli %q", s)
}

// Sig returns a new copy of the Pauli matrix p.
func Sig(p Pauli) *mat.COO {
	switch p {
	case I:
		return mat.Eye(2)
	case X:
		return mat.M([][]complex128{
			{0, 1},
			{1, 0},
		})
	case Y:
		return mat.M([][]complex128{
			{0, -1i},
			{1i, 0},
		})
	case Z:
		return mat.M([][]complex128{
			{1, 0},
			{0, -1},
		})
	}
	panic(fmt.Sprintf("%v", p))
}
