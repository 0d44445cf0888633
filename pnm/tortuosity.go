// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pnm

import (
	"container/heap"
	"math"

	"github.com/mattemangia/GeoscientistToolkit-sub013/inp"
)

// pqItem is one entry of the shortest-path queue
type pqItem struct {
	node int     // pore index
	dist float64 // tentative distance from the source [voxel]
}

// pathQueue is a min-heap of tentative distances. Decrease-key is lazy:
// improved nodes are pushed again and stale entries skipped on pop.
type pathQueue []pqItem

func (o pathQueue) Len() int            { return len(o) }
func (o pathQueue) Less(a, b int) bool  { return o[a].dist < o[b].dist }
func (o pathQueue) Swap(a, b int)       { o[a], o[b] = o[b], o[a] }
func (o *pathQueue) Push(x interface{}) { *o = append(*o, x.(pqItem)) }
func (o *pathQueue) Pop() interface{} {
	old := *o
	n := len(old)
	it := old[n-1]
	*o = old[:n-1]
	return it
}

// EstimateTortuosity computes the geometric tortuosity: the mean
// shortest-path length from the inlet pores to the outlet side divided
// by the sample extent, clamped to [1, 10]. Paths use centre-to-centre
// distances over open throats with the input radii; the estimate does
// not change with confining pressure. A cached value > 1 on the network
// wins; the computed value is written back to the cache.
func EstimateTortuosity(net *inp.Network, bnd *Boundaries) (τ float64) {

	// cached value wins
	if net.Tortuosity > 1.0 {
		return net.Tortuosity
	}

	// mean shortest path over inlets that reach the outlet side
	outlet := make(map[int]bool)
	for _, i := range bnd.Out {
		outlet[i] = true
	}
	sum, count := 0.0, 0
	for _, src := range bnd.In {
		d := shortestToSet(net, src, outlet)
		if !math.IsInf(d, 1) {
			sum += d
			count++
		}
	}
	τ = 1.0
	if count > 0 && bnd.Lvox > 0 {
		τ = sum / float64(count) / bnd.Lvox
	}

	// clamp and cache
	if τ < 1 {
		τ = 1
	}
	if τ > 10 {
		τ = 10
	}
	net.Tortuosity = τ
	return
}

// shortestToSet runs Dijkstra from the source pore and returns the
// distance at which the first pore of the target set settles; +Inf when
// the set is unreachable
func shortestToSet(net *inp.Network, src int, target map[int]bool) float64 {
	dist := make(map[int]float64)
	visited := make(map[int]bool)
	pq := &pathQueue{{src, 0}}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(pqItem)
		if visited[it.node] {
			continue
		}
		visited[it.node] = true
		if target[it.node] {
			return it.dist
		}
		for _, th := range net.Adj[it.node] {
			if net.Throats[th].R <= 0 {
				continue
			}
			j := net.Other(th, it.node)
			if j == it.node || visited[j] {
				continue
			}
			d := it.dist + net.Dist(it.node, j)
			if best, ok := dist[j]; !ok || d < best {
				dist[j] = d
				heap.Push(pq, pqItem{j, d})
			}
		}
	}
	return math.Inf(1)
}
