/*
 * doc.go, part of mdtools.
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

/*Package md is the root package of mdtools, a set of post-processing tools for the output
of the MISA-MD molecular dynamics code.

	**mdtools Capabilities**

    Reads the binary trajectory dumps written by MISA-MD, both the legacy
	("current") layout and the block-structured, multi-rank, multi-frame
	("next") layout, and converts them to text, XYZ or LAMMPS dump files
	(packages traj/misa and conv).

    Reads XYZ-like snapshots with ids, positions and, optionally, velocities
	and forces, in parallel, from plain or compressed files, and compares
	two snapshots atom by atom (package xyz).

    Finds vacancies and interstitials in BCC lattices with a Wigner-Seitz
	analysis, determining the simulation box automatically if needed
	(package ws), and histograms/plots the defect profile (packages histo and mdplot).

The root package holds what the others share: the Atom record, the Decoder and
Sink interfaces, the Convert driver and the error kinds.*/
package md
