// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"sync"

	"github.com/cpmech/gosl/la"
)

// ParallelMin is the smallest dimension for which MatVec fans out to
// goroutines; smaller systems run serially regardless of nw
var ParallelMin = 2000

// CSR is the immutable compressed-row solve form of a square sparse
// matrix. Indices are 32-bit to match the device buffer layout of the
// gpu package.
type CSR struct {
	N  int       // dimension
	Ap []int32   // row pointers; length N+1
	Aj []int32   // column indices; sorted within each row
	Ax []float64 // values
}

// Nnz returns the number of stored entries
func (o *CSR) Nnz() int {
	return len(o.Ax)
}

// MatVecSerial computes y := A·x on the calling goroutine
func (o *CSR) MatVecSerial(y, x la.Vector) {
	for i := 0; i < o.N; i++ {
		sum := 0.0
		for k := o.Ap[i]; k < o.Ap[i+1]; k++ {
			sum += o.Ax[k] * x[o.Aj[k]]
		}
		y[i] = sum
	}
}

// MatVec computes y := A·x using up to nw goroutines over contiguous
// row chunks. Rows are independent so the only synchronisation is the
// final barrier. Each row is accumulated in index order, keeping the
// result identical to the serial product.
func (o *CSR) MatVec(y, x la.Vector, nw int) {
	if nw <= 1 || o.N < ParallelMin {
		o.MatVecSerial(y, x)
		return
	}
	csize := (o.N + nw - 1) / nw
	var wg sync.WaitGroup
	for i0 := 0; i0 < o.N; i0 += csize {
		i1 := i0 + csize
		if i1 > o.N {
			i1 = o.N
		}
		wg.Add(1)
		go func(i0, i1 int) {
			for i := i0; i < i1; i++ {
				sum := 0.0
				for k := o.Ap[i]; k < o.Ap[i+1]; k++ {
					sum += o.Ax[k] * x[o.Aj[k]]
				}
				y[i] = sum
			}
			wg.Done()
		}(i0, i1)
	}
	wg.Wait()
}
