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

package relation

import (
	"slices"

	"github.com/afdiscovery/agreeset-go/internal"
)

// PositionListIndex is a stripped partition of row indices: rows sharing a
// value combination form a cluster, and clusters of a single row are dropped.
// Rows inside a cluster are ascending and clusters are ordered by their first
// row.
type PositionListIndex struct {
	clusters [][]int
	nep      uint64
	size     int
}

func newPositionListIndex(clusters [][]int) *PositionListIndex {
	pli := &PositionListIndex{clusters: clusters}
	for _, c := range clusters {
		pli.nep += internal.PairsIn(len(c))
		pli.size += len(c)
	}
	return pli
}

// NewPositionListIndex builds the stripped partition of a probing table.
// Negative values mark rows that agree with no other row.
func NewPositionListIndex(probingTable []int) *PositionListIndex {
	return newPositionListIndex(groupRows(probingTable, nil))
}

// groupRows groups rows by their probing value, keeping groups of two rows or
// more in order of first appearance. rows restricts the grouping to a subset;
// nil means every row of the table.
func groupRows(probingTable []int, rows []int) [][]int {
	index := make(map[int]int)
	var groups [][]int
	visit := func(row int) {
		value := probingTable[row]
		if value < 0 {
			return
		}
		g, ok := index[value]
		if !ok {
			g = len(groups)
			index[value] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], row)
	}
	if rows == nil {
		for row := range probingTable {
			visit(row)
		}
	} else {
		for _, row := range rows {
			visit(row)
		}
	}
	return slices.DeleteFunc(groups, func(g []int) bool { return len(g) < 2 })
}

// Clusters returns the non-singleton clusters. The result must not be
// modified.
func (p *PositionListIndex) Clusters() [][]int {
	return p.clusters
}

// NumClusters returns the number of non-singleton clusters.
func (p *PositionListIndex) NumClusters() int {
	return len(p.clusters)
}

// NumNonSingletonPairs returns the number of row pairs that share a cluster.
func (p *PositionListIndex) NumNonSingletonPairs() uint64 {
	return p.nep
}

// Size returns the number of rows that are in some cluster.
func (p *PositionListIndex) Size() int {
	return p.size
}

// Intersect refines the partition with a probing table: rows stay together
// only if they also share a non-negative probing value.
func (p *PositionListIndex) Intersect(probingTable []int) *PositionListIndex {
	var clusters [][]int
	for _, c := range p.clusters {
		clusters = append(clusters, groupRows(probingTable, c)...)
	}
	slices.SortFunc(clusters, func(a, b []int) int { return a[0] - b[0] })
	return newPositionListIndex(clusters)
}

// ProbingTable maps every row to its cluster index, or -1 for rows outside
// any cluster.
func (p *PositionListIndex) ProbingTable(numRows int) []int {
	table := make([]int, numRows)
	for i := range table {
		table[i] = -1
	}
	for id, c := range p.clusters {
		for _, row := range c {
			table[row] = id
		}
	}
	return table
}
