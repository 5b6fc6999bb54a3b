/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sampling

import (
	"github.com/afdiscovery/agreeset-go/internal"
)

// population is the set of tuple pairs eligible for sampling: every pair of
// rows that shares a cluster. A nil cluster stands for the rows 0..size-1,
// which is how the unrestricted population is represented without
// materializing the row list.
type population struct {
	clusters [][]int
	sizes    []int
	offsets  []uint64 // index of the first pair of each cluster
	total    uint64
}

func newUnrestrictedPopulation(numRows int) *population {
	p := &population{}
	if numRows >= 2 {
		p.add(nil, numRows)
	}
	return p
}

func newClusteredPopulation(clusters [][]int) *population {
	p := &population{}
	for _, c := range clusters {
		if len(c) >= 2 {
			p.add(c, len(c))
		}
	}
	return p
}

func (p *population) add(cluster []int, size int) {
	p.clusters = append(p.clusters, cluster)
	p.sizes = append(p.sizes, size)
	p.offsets = append(p.offsets, p.total)
	p.total += internal.PairsIn(size)
}

func (p *population) row(cluster, i int) int {
	if p.clusters[cluster] == nil {
		return i
	}
	return p.clusters[cluster][i]
}

// pair returns the rows of the t-th pair of the population.
func (p *population) pair(t uint64) (int, int) {
	c := internal.FindLastNotAbove(p.offsets, 0, len(p.offsets)-1, t, lessUint64)
	i, j := internal.PairAt(t-p.offsets[c], uint64(p.sizes[c]))
	return p.row(c, i), p.row(c, j)
}

// forEachPair visits every pair of the population in index order.
func (p *population) forEachPair(visit func(a, b int)) {
	for c, size := range p.sizes {
		for i := 0; i < size-1; i++ {
			a := p.row(c, i)
			for j := i + 1; j < size; j++ {
				visit(a, p.row(c, j))
			}
		}
	}
}

// drawIndices picks k distinct pair indices uniformly from [0, total) with
// Floyd's algorithm. The result order depends only on the random stream.
func (p *population) drawIndices(k uint64, random RandomSource) []uint64 {
	drawn := make(map[uint64]struct{}, k)
	indices := make([]uint64, 0, k)
	for j := p.total - k; j < p.total; j++ {
		t := random.Uint64N(j + 1)
		if _, ok := drawn[t]; ok {
			t = j
		}
		drawn[t] = struct{}{}
		indices = append(indices, t)
	}
	return indices
}

func lessUint64(a, b uint64) bool {
	return a < b
}
