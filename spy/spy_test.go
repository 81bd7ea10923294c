package spy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fumin/quijy"
	"github.com/fumin/quijy/mat"
)

func TestSave(t *testing.T) {
	t.Parallel()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer os.RemoveAll(dir)

	h, err := quijy.HamHeisCOO(4, quijy.NewHeisenbergOptions().Periodic(true))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	for _, name := range []string{"h.png", "h.svg"} {
		fpath := filepath.Join(dir, name)
		if err := Save(fpath, h, "heisenberg"); err != nil {
			t.Fatalf("%+v", err)
		}
		info, err := os.Stat(fpath)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s empty", fpath)
		}
	}

	if err := Save(filepath.Join(dir, "zero.png"), mat.Zeros(4, 4), "zero"); err != nil {
		t.Fatalf("%+v", err)
	}
}

func TestRowTicks(t *testing.T) {
	t.Parallel()
	for _, tick := range (rowTicks{}).Ticks(-15.5, 0.5) {
		if tick.Label == "" {
			continue
		}
		if tick.Value > 0 {
			t.Fatalf("%#v", tick)
		}
		if tick.Label[0] == '-' {
			t.Fatalf("%#v", tick)
		}
	}
}
