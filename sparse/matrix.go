// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements a small sparse matrix pair for network
// systems: a mutable row-map structure for assembly and an immutable
// compressed-row structure for solving, plus a conjugate-gradient solver
package sparse

import (
	"sort"

	"github.com/cpmech/gosl/la"
)

// Matrix is the mutable assembly form of a square sparse matrix. Rows
// are maps from column index to value so that conductance stamping and
// boundary row edits stay O(1). Convert to CSR before solving.
type Matrix struct {
	N    int               // dimension
	Rows []map[int]float64 // row → (column → value); nil rows are empty
}

// NewMatrix returns a new n×n assembly matrix
func NewMatrix(n int) *Matrix {
	return &Matrix{N: n, Rows: make([]map[int]float64, n)}
}

// Add adds v to the entry at i,j
func (o *Matrix) Add(i, j int, v float64) {
	if o.Rows[i] == nil {
		o.Rows[i] = make(map[int]float64)
	}
	o.Rows[i][j] += v
}

// Set overwrites the entry at i,j
func (o *Matrix) Set(i, j int, v float64) {
	if o.Rows[i] == nil {
		o.Rows[i] = make(map[int]float64)
	}
	o.Rows[i][j] = v
}

// Get returns the entry at i,j; absent entries are zero
func (o *Matrix) Get(i, j int) float64 {
	return o.Rows[i][j]
}

// ClearRow removes all entries of row i
func (o *Matrix) ClearRow(i int) {
	o.Rows[i] = nil
}

// Nnz returns the number of stored entries
func (o *Matrix) Nnz() (nnz int) {
	for _, row := range o.Rows {
		nnz += len(row)
	}
	return
}

// ToCSR converts to the compressed-row solve form. Column indices are
// sorted within each row, which keeps matrix-vector products, and hence
// solver results, deterministic across runs.
func (o *Matrix) ToCSR() (c *CSR) {
	nnz := o.Nnz()
	c = &CSR{
		N:  o.N,
		Ap: make([]int32, o.N+1),
		Aj: make([]int32, 0, nnz),
		Ax: make([]float64, 0, nnz),
	}
	var cols []int
	for i := 0; i < o.N; i++ {
		cols = cols[:0]
		for j := range o.Rows[i] {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			c.Aj = append(c.Aj, int32(j))
			c.Ax = append(c.Ax, o.Rows[i][j])
		}
		c.Ap[i+1] = int32(len(c.Aj))
	}
	return
}

// ToTriplet converts to a gosl triplet, e.g. for cross-checks against
// the la sparse kernels
func (o *Matrix) ToTriplet() (t *la.Triplet) {
	t = new(la.Triplet)
	t.Init(o.N, o.N, o.Nnz())
	for i, row := range o.Rows {
		for j, v := range row {
			t.Put(i, j, v)
		}
	}
	return
}
