/*
 * main_test.go, part of mdtools.
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

package main

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const L = 2.85532

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }

//writeSnapshot writes a perfect 2x2x2 BCC box where the last atom sits
//on the first site.
func writeSnapshot(Te *testing.T, name string) {
	var b strings.Builder
	b.WriteString("16\nbox\n")
	id := 1
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				for _, h := range []float64{0, 0.5} {
					pos := []float64{(float64(x) + h) * L, (float64(y) + h) * L, (float64(z) + h) * L}
					if id == 16 {
						pos = []float64{0.01, 0, 0}
					}
					b.WriteString(strings.Join([]string{
						strconv.Itoa(id), "Fe", ftoa(pos[0]), ftoa(pos[1]), ftoa(pos[2]),
					}, " ") + "\n")
					id++
				}
			}
		}
	}
	w, err := os.Create(name)
	require.NoError(Te, err)
	_, err = w.WriteString(b.String())
	require.NoError(Te, err)
	require.NoError(Te, w.Close())
}

func TestAns(Te *testing.T) {
	dir := Te.TempDir()
	in := filepath.Join(dir, "snap.xyz")
	out := filepath.Join(dir, "defects.csv")
	writeSnapshot(Te, in)
	var stdout strings.Builder
	require.NoError(Te, run([]string{"ans", "-workers", "2", "-trailing", "-profile-json", filepath.Join(dir, "p.json"), in, out}, &stdout))
	data, err := os.ReadFile(out)
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(Te, lines, 4) //header, 2 atoms on site 0, the last site empty.
	require.Equal(Te, "V,3,1,1,0,0,0", lines[3])
	_, err = os.Stat(filepath.Join(dir, "p.json"))
	require.NoError(Te, err)

	norm := filepath.Join(dir, "norm.json")
	require.NoError(Te, run([]string{"ans", "-trailing", "-profile-normalize", "-profile-json", norm, in, out}, &stdout))
	data, err = os.ReadFile(norm)
	require.NoError(Te, err)
	var profile struct {
		Vacancies struct {
			Normalized bool      `json:"normalized"`
			Total      int       `json:"total"`
			Histo      []float64 `json:"histo"`
		} `json:"vacancies"`
	}
	require.NoError(Te, json.Unmarshal(data, &profile))
	require.True(Te, profile.Vacancies.Normalized)
	require.Equal(Te, 1, profile.Vacancies.Total)
	sum := 0.0
	for _, v := range profile.Vacancies.Histo {
		sum += v
	}
	require.InDelta(Te, 1.0, sum, 1e-12)

	require.Error(Te, run([]string{"ans", in}, &stdout))
	require.Error(Te, run([]string{"ans", "-mismatch", "never", in, out}, &stdout))
}

func TestDiff(Te *testing.T) {
	dir := Te.TempDir()
	a := filepath.Join(dir, "a.xyz")
	b := filepath.Join(dir, "b.xyz.gz")
	writeSnapshot(Te, a)
	data, err := os.ReadFile(a)
	require.NoError(Te, err)
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "c.xyz"), []byte(strings.Replace(string(data), "16 Fe 0.01", "16 Fe 0.5", 1)), 0o644))
	writeSnapshot(Te, b) //plain text in a .gz file can't be read
	var stdout strings.Builder
	require.Error(Te, run([]string{"diff", a, b}, &stdout))

	stdout.Reset()
	require.NoError(Te, run([]string{"diff", a, a}, &stdout))
	require.Contains(Te, stdout.String(), "no difference")

	err = run([]string{"diff", a, filepath.Join(dir, "c.xyz")}, &stdout)
	require.True(Te, errors.Is(err, errDifferent))
	require.Error(Te, run([]string{"diff", "-periodic", a, a}, &stdout))
}

func TestConv(Te *testing.T) {
	dir := Te.TempDir()
	//a legacy file from one rank with 2 atoms.
	data := make([]byte, 128+128+2*72)
	le := binary.LittleEndian
	le.PutUint64(data[128:], 2)
	for i := 0; i < 2; i++ {
		item := data[256+72*i:]
		le.PutUint64(item[0:], uint64(i+1))
		le.PutUint32(item[16:], uint32(i))
		le.PutUint64(item[24:], math.Float64bits(float64(i)))
	}
	in := filepath.Join(dir, "legacy.bin")
	require.NoError(Te, os.WriteFile(in, data, 0o644))
	out := filepath.Join(dir, "out.xyz")
	var stdout strings.Builder
	require.NoError(Te, run([]string{"conv", "-f", "xyz", "-p", "2", "-r", "1", "-o", out, in}, &stdout))
	text, err := os.ReadFile(out)
	require.NoError(Te, err)
	lines := strings.Split(string(text), "\n")
	require.Equal(Te, "2", lines[0])
	require.Equal(Te, "Fe\t0.00\t0.00\t0.00", lines[2])
	require.Equal(Te, "Cu\t1.00\t0.00\t0.00", lines[3])

	require.Error(Te, run([]string{"conv", "-s", "future", "-o", out, in}, &stdout))
	require.Error(Te, run([]string{"conv"}, &stdout))
}

func TestCommands(Te *testing.T) {
	var stdout strings.Builder
	require.NoError(Te, run([]string{"example-config"}, &stdout))
	require.Contains(Te, stdout.String(), "[Analysis]")
	require.Error(Te, run([]string{"nothing"}, &stdout))
	require.Error(Te, run(nil, &stdout))
	require.Equal(Te, "img.3.png", numbered("img.png", 3, true))
	require.Equal(Te, "img.png", numbered("img.png", 3, false))
}
