package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fumin/quijy"
)

// Params are the physical parameters of a run.
type Params struct {
	N        int     `yaml:"n"`
	Jx       float64 `yaml:"jx"`
	Jy       float64 `yaml:"jy"`
	Jz       float64 `yaml:"jz"`
	Bz       float64 `yaml:"bz"`
	Periodic bool    `yaml:"periodic"`
}

func DefaultParams() Params {
	return Params{N: 4, Jx: 1, Jy: 1, Jz: 1}
}

// LoadParams reads a yaml file over the default parameters.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrap(err, "")
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Params{}, errors.Wrap(err, path)
	}
	return p, nil
}

// registerFlags defines the parameter flags on fs, with defaults taken from p.
func (p Params) registerFlags(fs *flag.FlagSet) {
	fs.Int("n", p.N, "number of spins")
	fs.Float64("jx", p.Jx, "XX coupling")
	fs.Float64("jy", p.Jy, "YY coupling")
	fs.Float64("jz", p.Jz, "ZZ coupling")
	fs.Float64("bz", p.Bz, "magnetic field along z")
	fs.Bool("periodic", p.Periodic, "periodic boundary conditions")
}

// override replaces the fields of p whose flags were set explicitly on fs.
func (p *Params) override(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch f.Name {
		case "n":
			p.N = g.Get().(int)
		case "jx":
			p.Jx = g.Get().(float64)
		case "jy":
			p.Jy = g.Get().(float64)
		case "jz":
			p.Jz = g.Get().(float64)
		case "bz":
			p.Bz = g.Get().(float64)
		case "periodic":
			p.Periodic = g.Get().(bool)
		}
	})
}

func (p Params) Options() quijy.HeisenbergOptions {
	return quijy.NewHeisenbergOptions().J(p.Jx, p.Jy, p.Jz).Bz(p.Bz).Periodic(p.Periodic).Sparse(true)
}
