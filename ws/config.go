/*
 * config.go, part of mdtools.
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

package ws

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	md "github.com/rmera/mdtools"
)

//ExampleConfigFile is a documented configuration file for the analysis.
const ExampleConfigFile = `[Analysis]

# Lattice constant of the BCC lattice, in the units of the snapshot.
LatticeConstant = 2.85532

# Size of the simulation box, in unit cells. If not given, the box is
# taken to be a cube, if the number of atoms allows it, or it is found
# from the positions of the atoms.
# BoxSize = 10 10 10

# Origin of the simulation box.
# BoxStart = 0 0 0

# What to do if the box can't hold the atoms in the snapshot: warn or fail.
Mismatch = warn

# Goroutines used to map the atoms to lattice sites. 0 means one per CPU.
Workers = 0

# Report the empty sites after the last occupied one.
TrailingVacancies = false

# Axis (0, 1 or 2) and number of bins for the defect profile.
ProfileAxis = 2
ProfileBins = 20

# Give the profile as the fraction of the defects in each bin, instead of counts.
ProfileNormalize = false
`

//Config holds the parameters of an analysis run.
type Config struct {
	LatticeConstant   float64
	BoxSize           string
	BoxStart          string
	Mismatch          string
	Workers           int
	TrailingVacancies bool
	ProfileAxis       int
	ProfileBins       int
	ProfileNormalize  bool
}

type configWrapper struct {
	Analysis Config
}

//DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LatticeConstant: DefaultConstant,
		Mismatch:        PolicyWarn.String(),
		ProfileAxis:     2,
		ProfileBins:     20,
	}
}

//ReadConfig reads the [Analysis] section of a gcfg file. Values not in
//the file keep their defaults.
func ReadConfig(fname string) (*Config, error) {
	wrap := &configWrapper{*DefaultConfig()}
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, Error{fmt.Sprintf("config file %s: %v", fname, err), md.ErrParse, []string{"ReadConfig"}, true}
	}
	if err := wrap.Analysis.CheckInit(); err != nil {
		return nil, errDecorate(err, "ReadConfig")
	}
	return &wrap.Analysis, nil
}

//ReadConfigString is like ReadConfig, but reads the configuration from a string.
func ReadConfigString(text string) (*Config, error) {
	wrap := &configWrapper{*DefaultConfig()}
	if err := gcfg.ReadStringInto(wrap, text); err != nil {
		return nil, Error{err.Error(), md.ErrParse, []string{"ReadConfigString"}, true}
	}
	if err := wrap.Analysis.CheckInit(); err != nil {
		return nil, errDecorate(err, "ReadConfigString")
	}
	return &wrap.Analysis, nil
}

//CheckInit checks that the values make sense.
func (C *Config) CheckInit() error {
	C.Mismatch = strings.ToLower(strings.TrimSpace(C.Mismatch))
	if _, err := ParsePolicy(C.Mismatch); err != nil {
		return errDecorate(err, "CheckInit")
	}
	if C.LatticeConstant <= 0 {
		return Error{fmt.Sprintf("%s: %g", BadLattice, C.LatticeConstant), md.ErrUnsupported, []string{"CheckInit"}, true}
	}
	if C.ProfileAxis < 0 || C.ProfileAxis > 2 {
		return Error{fmt.Sprintf("%s: %d", BadAxis, C.ProfileAxis), md.ErrUnsupported, []string{"CheckInit"}, true}
	}
	if C.ProfileBins < 1 {
		C.ProfileBins = 20
	}
	if _, err := C.BoxConfig(); err != nil {
		return errDecorate(err, "CheckInit")
	}
	return nil
}

//BoxConfig returns the box requested in the configuration.
func (C *Config) BoxConfig() (*BoxConfig, error) {
	ret := new(BoxConfig)
	var err error
	if ret.Policy, err = ParsePolicy(C.Mismatch); err != nil {
		return nil, errDecorate(err, "BoxConfig")
	}
	for _, f := range strings.Fields(C.BoxSize) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, Error{fmt.Sprintf("BoxSize %q: %v", C.BoxSize, err), md.ErrParse, []string{"BoxConfig"}, true}
		}
		ret.Size = append(ret.Size, v)
	}
	if len(ret.Size) != 0 && len(ret.Size) != 3 {
		return nil, Error{BadSizeLen, md.ErrParse, []string{"BoxConfig"}, true}
	}
	for _, f := range strings.Fields(C.BoxStart) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("BoxStart %q: %v", C.BoxStart, err), md.ErrParse, []string{"BoxConfig"}, true}
		}
		ret.Start = append(ret.Start, v)
	}
	if len(ret.Start) != 0 && len(ret.Start) != 3 {
		return nil, Error{BadStartLen, md.ErrParse, []string{"BoxConfig"}, true}
	}
	return ret, nil
}

//Lattice returns the lattice of the configuration.
func (C *Config) Lattice() *Lattice {
	return NewLattice(C.LatticeConstant)
}

//Options returns the analysis options of the configuration.
func (C *Config) Options() *Options {
	return &Options{Workers: C.Workers, TrailingVacancies: C.TrailingVacancies}
}
