/*
 * main.go, part of mdtools.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//mdtools post-processes the output of MISA-MD simulations: it converts the
//binary trajectories to text formats, finds the point defects in BCC
//snapshots, and compares snapshots.
//
//	mdtools conv [flags] input [input...]
//	mdtools ans [flags] input output [input output...]
//	mdtools diff [flags] file1 file2
//	mdtools example-config
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	md "github.com/rmera/mdtools"
	"github.com/rmera/mdtools/conv"
	"github.com/rmera/mdtools/mdplot"
	"github.com/rmera/mdtools/traj/misa"
	"github.com/rmera/mdtools/ws"
	"github.com/rmera/mdtools/xyz"
)

const usage = `usage: mdtools <command> [flags] [arguments]

commands:
  conv            convert MISA-MD binary files to xyz, text or LAMMPS dump
  ans             find vacancies and interstitials in BCC snapshots
  diff            compare the particles of two snapshots, id by id
  example-config  print an example configuration file for ans
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("mdtools: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

//errDifferent is returned by diff when the snapshots don't match.
var errDifferent = errors.New("the snapshots are different")

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("no command given\n%s", usage)
	}
	switch args[0] {
	case "conv":
		return convMain(args[1:])
	case "ans":
		return ansMain(args[1:])
	case "diff":
		return diffMain(args[1:], stdout)
	case "example-config":
		_, err := io.WriteString(stdout, ws.ExampleConfigFile)
		return err
	case "help", "-h", "-help", "--help":
		_, err := io.WriteString(stdout, usage)
		return err
	}
	return fmt.Errorf("unknown command %q\n%s", args[0], usage)
}

func convMain(args []string) error {
	fs := flag.NewFlagSet("conv", flag.ContinueOnError)
	output := fs.String("o", "md-output", "output file. With several inputs, the input number is appended")
	format := fs.String("f", conv.FormatXYZ, "output format: xyz, text or dump")
	prec := fs.Int("p", 6, "decimal places of the numbers written")
	standard := fs.String("s", misa.StandardCurrent, "binary format standard: current or next")
	ranks := fs.Int("r", 0, "MPI ranks that wrote the files (current standard only)")
	dry := fs.Bool("dry", false, "check the inputs, but don't write anything")
	verbose := fs.Bool("v", false, "report progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		return fmt.Errorf("conv: no input files given")
	}
	for i, in := range inputs {
		out := *output
		if len(inputs) > 1 {
			out = fmt.Sprintf("%s.%d", *output, i)
		}
		d, err := misa.Open(in, *standard, *ranks)
		if err != nil {
			return err
		}
		if *dry {
			log.Printf("%s: %d frames, would be written to %s as %s", in, d.Frames(), out, *format)
			d.Close()
			continue
		}
		if *verbose {
			log.Printf("converting %s (%d frames) to %s", in, d.Frames(), out)
		}
		sink, closer, err := conv.Create(*format, out, *prec)
		if err != nil {
			d.Close()
			return err
		}
		err = md.Convert(d, sink, out)
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("conv %s: %w", in, err)
		}
	}
	return nil
}

//floatList parses space or comma separated floats.
func floatList(s string) ([]float64, error) {
	var ret []float64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func ansMain(args []string) error {
	fs := flag.NewFlagSet("ans", flag.ContinueOnError)
	config := fs.String("c", "", "configuration file (see example-config)")
	boxSize := fs.String("box-size", "", "box size in unit cells, as \"x y z\". Detected if not given")
	boxStart := fs.String("box-start", "", "origin of the box, as \"x y z\"")
	mismatch := fs.String("mismatch", "", "what to do if the box doesn't fit the atoms: warn or fail")
	workers := fs.Int("workers", -1, "goroutines for the analysis, 0 for one per CPU")
	trailing := fs.Bool("trailing", false, "also report the empty sites after the last occupied one")
	profile := fs.String("profile", "", "plot the defect profile to this file (png, svg, pdf)")
	profileJSON := fs.String("profile-json", "", "write the defect profile histograms to this JSON file")
	normalize := fs.Bool("profile-normalize", false, "give the profile as fractions of the defects, not counts")
	verbose := fs.Bool("v", false, "report progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 || len(files)%2 != 0 {
		return fmt.Errorf("ans: give pairs of input and output files")
	}
	cfg := ws.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = ws.ReadConfig(*config); err != nil {
			return err
		}
	}
	//flags override the configuration file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "box-size":
			cfg.BoxSize = *boxSize
		case "box-start":
			cfg.BoxStart = *boxStart
		case "mismatch":
			cfg.Mismatch = *mismatch
		case "workers":
			cfg.Workers = *workers
		case "trailing":
			cfg.TrailingVacancies = *trailing
		case "profile-normalize":
			cfg.ProfileNormalize = *normalize
		}
	})
	cfg.BoxSize = strings.ReplaceAll(cfg.BoxSize, ",", " ")
	cfg.BoxStart = strings.ReplaceAll(cfg.BoxStart, ",", " ")
	if err := cfg.CheckInit(); err != nil {
		return err
	}
	lat := cfg.Lattice()
	for i := 0; i < len(files); i += 2 {
		in, out := files[i], files[i+1]
		snap, err := xyz.ReadFile(in)
		if err != nil {
			return err
		}
		if *verbose {
			log.Printf("read %d atoms from %s", snap.Len(), in)
		}
		box, err := cfg.BoxConfig()
		if err != nil {
			return err
		}
		if err = ws.Resolve(snap.Len(), snap.Coords(), lat, box); err != nil {
			return err
		}
		if *verbose {
			b := box.Box()
			log.Printf("box size: %d %d %d cells, origin %v", b.X, b.Y, b.Z, box.Origin)
		}
		f, err := xyz.Create(out)
		if err != nil {
			return err
		}
		res, err := ws.Analyze(snap, box, lat, f, cfg.Options())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.Printf("%s: %d vacancies, %d multiply occupied sites with %d atoms", in, res.Vacancies, res.Interstitials, res.Occupants)
		if *profile == "" && *profileJSON == "" {
			continue
		}
		vac, occ, err := ws.Profile(res, cfg.ProfileAxis, cfg.ProfileBins)
		if err != nil {
			return err
		}
		if cfg.ProfileNormalize {
			vac.Normalize()
			occ.Normalize()
		}
		if *verbose {
			log.Printf("defect profile along axis %d:\n%s\n%s", cfg.ProfileAxis, vac, occ)
		}
		if *profile != "" {
			name := numbered(*profile, i/2, len(files) > 2)
			title := fmt.Sprintf("Defects along axis %d, %s", cfg.ProfileAxis, in)
			if err := mdplot.Profile(vac, occ, title, name); err != nil {
				return err
			}
		}
		if *profileJSON != "" {
			j, err := json.Marshal(struct {
				Input     string      `json:"input"`
				Axis      int         `json:"axis"`
				Vacancies interface{} `json:"vacancies"`
				Occupants interface{} `json:"occupants"`
			}{in, cfg.ProfileAxis, vac, occ})
			if err != nil {
				return err
			}
			if err := os.WriteFile(numbered(*profileJSON, i/2, len(files) > 2), j, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

//numbered inserts n before the extension of name, if several is true.
func numbered(name string, n int, several bool) string {
	if !several {
		return name
	}
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return fmt.Sprintf("%s.%d", name, n)
	}
	return fmt.Sprintf("%s.%d%s", name[:dot], n, name[dot:])
}

func diffMain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	tol := fs.Float64("e", 1e-4, "largest difference allowed in each component")
	periodic := fs.Bool("periodic", false, "take periodic images as equal (needs -box)")
	boxStr := fs.String("box", "", "box lengths, as \"x y z\"")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("diff: give exactly 2 files")
	}
	var box []float64
	if *periodic {
		var err error
		if box, err = floatList(*boxStr); err != nil || len(box) != 3 {
			return fmt.Errorf("diff: -periodic needs 3 box lengths, got %q", *boxStr)
		}
	}
	a, err := xyz.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := xyz.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	m, err := xyz.Diff(a, b, *tol, box)
	if err != nil {
		return err
	}
	for _, v := range m {
		fmt.Fprintln(stdout, v)
	}
	if len(m) > 0 {
		return fmt.Errorf("%w: %d particles", errDifferent, len(m))
	}
	fmt.Fprintln(stdout, "no difference.")
	return nil
}
