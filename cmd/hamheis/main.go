// Command hamheis assembles a Heisenberg Hamiltonian and writes it as a sparse COO csv.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/fumin/quijy"
	"github.com/fumin/quijy/mat"
	"github.com/fumin/quijy/spy"
	"github.com/fumin/quijy/store"
)

var (
	runDir     = flag.String("d", filepath.Join("runs", "hamheis"), "output directory")
	configPath = flag.String("config", "", "yaml parameter file")
	cachePath  = flag.String("cache", "", "sqlite cache of assembled operators")
	spyPath    = flag.String("spy", "", "sparsity plot, png, svg or pdf")
)

func init() {
	DefaultParams().registerFlags(flag.CommandLine)
}

func params() (Params, error) {
	p := DefaultParams()
	if *configPath != "" {
		var err error
		p, err = LoadParams(*configPath)
		if err != nil {
			return Params{}, errors.Wrap(err, "")
		}
	}
	p.override(flag.CommandLine)
	return p, nil
}

func build(ctx context.Context, p Params) (*mat.COO, error) {
	opt := p.Options()
	if *cachePath == "" {
		return quijy.HamHeisCOO(p.N, opt)
	}

	s, err := store.Open(*cachePath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer s.Close()
	key := opt.Key(p.N)
	h, err := s.Get(ctx, key)
	switch {
	case err == nil:
		log.Printf("found %s in %s", key, s.Path)
		return h, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, errors.Wrap(err, "")
	}

	h, err = quijy.HamHeisCOO(p.N, opt)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if err := s.Put(ctx, key, h); err != nil {
		return nil, errors.Wrap(err, "")
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	log.Printf("cached %s, %d operators in %s", key, len(keys), s.Path)
	return h, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	p, err := params()
	if err != nil {
		return errors.Wrap(err, "")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	h, err := build(ctx, p)
	if err != nil {
		return errors.Wrapf(err, "%#v", p)
	}
	log.Printf("%#v %dx%d nnz %d hermitian %t %s", p, h.Rows(), h.Cols(), h.NumNonZero(), h.IsHermitian(1e-12), time.Since(start))

	if err := os.MkdirAll(*runDir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	if err := h.WriteCOO(*runDir); err != nil {
		return errors.Wrap(err, "")
	}

	if *spyPath != "" {
		if err := spy.Save(*spyPath, h, p.Options().Key(p.N)); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}
