package mat

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	FnameShape = "shape.csv"
	FnameCOO   = "coo.csv"
)

// WriteCOO writes m into dir as a shape file and a COO file.
// Each COO record is value,row,col, where the value and the row are left empty when they repeat the previous record.
func (m *COO) WriteCOO(dir string) error {
	shapePath := filepath.Join(dir, FnameShape)
	if err := os.WriteFile(shapePath, []byte(fmt.Sprintf("%d,%d", m.rows, m.cols)), 0644); err != nil {
		return errors.Wrap(err, "")
	}

	cooPath := filepath.Join(dir, FnameCOO)
	cooF, err := os.Create(cooPath)
	if err != nil {
		return errors.Wrap(err, "")
	}

	w := csv.NewWriter(cooF)
	// prev is the previously written value for compression.
	prev := vRowCol{v: cmplx.NaN(), row: -1, col: -1}
	for _, v := range m.Data {
		var vStr string
		if v.v != prev.v {
			vStr = FormatNumpy(v.v)
		}
		var rowStr string
		if v.row != prev.row {
			rowStr = strconv.Itoa(v.row)
		}
		if err1 := w.Write([]string{vStr, rowStr, strconv.Itoa(v.col)}); err1 != nil && err == nil {
			err = errors.Wrap(err1, "")
			break
		}
		prev = v
	}
	w.Flush()
	if err1 := w.Error(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}

	if err1 := cooF.Close(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	return err
}

// cooReader reads the elements of a COO file one record at a time.
type cooReader struct {
	f *os.File
	r *csv.Reader
	i int

	prev vRowCol
}

func newCOOReader(dir string) (*cooReader, error) {
	r := &cooReader{i: -1}

	cooPath := filepath.Join(dir, FnameCOO)
	var err error
	r.f, err = os.Open(cooPath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	r.r = csv.NewReader(r.f)
	return r, nil
}

func (r *cooReader) Close() error {
	return r.f.Close()
}

func (r *cooReader) read() (vRowCol, error) {
	r.i++
	record, err := r.r.Read()
	if err == io.EOF {
		return vRowCol{}, io.EOF
	}
	if err != nil {
		return vRowCol{}, errors.Wrap(err, fmt.Sprintf("%d", r.i))
	}
	if len(record) != 3 {
		return vRowCol{}, errors.Errorf("%d %#v", r.i, record)
	}

	var vrc vRowCol
	switch {
	case record[0] == "":
		if r.i == 0 {
			return vRowCol{}, errors.Errorf("%d %#v", r.i, record)
		}
		vrc.v = r.prev.v
	default:
		vrc.v, err = ParseNumpy(record[0])
		if err != nil {
			return vRowCol{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
		}
	}

	switch {
	case record[1] == "":
		if r.i == 0 {
			return vRowCol{}, errors.Errorf("%d %#v", r.i, record)
		}
		vrc.row = r.prev.row
	default:
		vrc.row, err = strconv.Atoi(record[1])
		if err != nil {
			return vRowCol{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
		}
	}

	vrc.col, err = strconv.Atoi(record[2])
	if err != nil {
		return vRowCol{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
	}

	r.prev = vrc
	return vrc, nil
}

func ReadCOO(dir string) (*COO, error) {
	rows, cols, err := readShape(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	m := Zeros(rows, cols)

	r, err := newCOOReader(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer r.Close()
	for {
		v, err := r.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
		if v.row < 0 || v.row >= rows || v.col < 0 || v.col >= cols {
			return nil, errors.Errorf("%d %d out of %dx%d", v.row, v.col, rows, cols)
		}
		if n := len(m.Data); n > 0 && rowMajor(m.Data[n-1], v) >= 0 {
			return nil, errors.Errorf("%d %d not in row-major order", v.row, v.col)
		}
		if v.v == 0 {
			continue
		}

		m.Data = append(m.Data, v)
	}

	return m, nil
}

func readShape(dir string) (int, int, error) {
	f, err := os.Open(filepath.Join(dir, FnameShape))
	if err != nil {
		return -1, -1, errors.Wrap(err, "")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return -1, -1, errors.Wrap(err, "")
	}
	if len(records) == 0 {
		return -1, -1, errors.Errorf("empty")
	}
	row := records[0]

	if len(row) != 2 {
		return -1, -1, errors.Errorf("%#v", row)
	}
	i, err := strconv.Atoi(row[0])
	if err != nil {
		return -1, -1, errors.Wrap(err, fmt.Sprintf("%#v", row))
	}
	j, err := strconv.Atoi(row[1])
	if err != nil {
		return -1, -1, errors.Wrap(err, fmt.Sprintf("%#v", row))
	}

	return i, j, nil
}

// FormatNumpy formats v the way numpy prints complex numbers, for example 1 or (1-2j).
func FormatNumpy(v complex128) string {
	switch {
	case imag(v) == 0:
		return strconv.FormatFloat(real(v), 'g', -1, 64)
	default:
		s := strconv.FormatComplex(v, 'g', -1, 128)
		s = strings.ReplaceAll(s, "i", "j")
		return s
	}
}

func ParseNumpy(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "j", "i")
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	return v, nil
}
