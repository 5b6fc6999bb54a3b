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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afdiscovery/agreeset-go/relation"
	"github.com/afdiscovery/agreeset-go/vertical"
)

// newTenRowRelation returns a relation of 10 rows where exactly 12 of the 45
// tuple pairs agree on column 0 (A).
func newTenRowRelation(t *testing.T) *relation.RelationData {
	t.Helper()
	rel, err := relation.NewRelationData(
		[]string{"A", "B", "C"},
		[][]string{
			{"a", "1", "p"},
			{"a", "1", "q"},
			{"a", "2", "p"},
			{"a", "2", "q"},
			{"b", "3", "p"},
			{"b", "3", "q"},
			{"b", "4", "p"},
			{"b", "4", "q"},
			{"c", "5", "p"},
			{"d", "6", "q"},
		},
	)
	require.NoError(t, err)
	return rel
}

// newConstantFirstColumnRelation returns a relation of 10 rows whose first
// column holds a single value, so focusing on it keeps all 45 pairs.
func newConstantFirstColumnRelation(t *testing.T) *relation.RelationData {
	t.Helper()
	records := make([][]string, 10)
	for i := range records {
		records[i] = []string{"x", fmt.Sprint(i % 3), fmt.Sprint(i % 4)}
	}
	rel, err := relation.NewRelationData([]string{"K", "M3", "M4"}, records)
	require.NoError(t, err)
	return rel
}

// newModuloRelation returns numRows rows with columns row%10, row%20, row%7.
func newModuloRelation(t *testing.T, numRows int) *relation.RelationData {
	t.Helper()
	records := make([][]string, numRows)
	for i := range records {
		records[i] = []string{fmt.Sprint(i % 10), fmt.Sprint(i % 20), fmt.Sprint(i % 7)}
	}
	rel, err := relation.NewRelationData([]string{"M10", "M20", "M7"}, records)
	require.NoError(t, err)
	return rel
}

func mustVertical(t *testing.T, rel *relation.RelationData, columns ...int) vertical.Vertical {
	t.Helper()
	v, err := rel.Vertical(columns...)
	require.NoError(t, err)
	return v
}

// allVerticals enumerates every column combination of rel.
func allVerticals(t *testing.T, rel *relation.RelationData) []vertical.Vertical {
	t.Helper()
	var out []vertical.Vertical
	for mask := 0; mask < 1<<rel.NumColumns(); mask++ {
		var columns []int
		for c := 0; c < rel.NumColumns(); c++ {
			if mask&(1<<c) != 0 {
				columns = append(columns, c)
			}
		}
		out = append(out, mustVertical(t, rel, columns...))
	}
	return out
}

func agree(rel *relation.RelationData, a, b int, v vertical.Vertical) bool {
	for _, c := range v.Columns() {
		if rel.ProbingValue(a, c) != rel.ProbingValue(b, c) {
			return false
		}
	}
	return true
}

// bruteForceCounts enumerates all tuple pairs agreeing on focus and returns
// how many agree on agreement, and how many of those disagree somewhere on
// disagreement.
func bruteForceCounts(rel *relation.RelationData, focus, agreement, disagreement vertical.Vertical) (uint64, uint64) {
	var agreeing, violating uint64
	for a := 0; a < rel.NumRows(); a++ {
		for b := a + 1; b < rel.NumRows(); b++ {
			if !agree(rel, a, b, focus) || !agree(rel, a, b, agreement) {
				continue
			}
			agreeing++
			if !disagreement.IsEmpty() && !agree(rel, a, b, disagreement) {
				violating++
			}
		}
	}
	return agreeing, violating
}

// fixedRelation is a Relation stub for estimation arithmetic.
type fixedRelation struct {
	numColumns int
	numPairs   uint64
}

func (f fixedRelation) NumRows() int { return 0 }
func (f fixedRelation) NumColumns() int { return f.numColumns }
func (f fixedRelation) NumTuplePairs() uint64 { return f.numPairs }
func (f fixedRelation) ProbingValue(_, _ int) int { return 0 }

// fixedCounter reports the same hit count for every query.
type fixedCounter struct {
	hits uint64
}

func (f fixedCounter) CountAgreeing(vertical.Vertical) uint64 { return f.hits }
func (f fixedCounter) CountAgreeingDisagreeing(_, _ vertical.Vertical) uint64 {
	return f.hits
}
func (f fixedCounter) CountAgreeingBatch(_ vertical.Vertical, ds []vertical.Vertical) []uint64 {
	out := make([]uint64, len(ds))
	for i := range out {
		out[i] = f.hits
	}
	return out
}
func (f fixedCounter) NumAgreeSets() int { return 1 }
func (f fixedCounter) AgreeSets() []AgreeSetCount { return nil }

// newFixedSample builds a sample whose counter always reports hits.
func newFixedSample(sampleSize, populationSize, relationPairs, hits uint64, opts ...Option) *AgreeSetSample {
	return &AgreeSetSample{
		relation:       fixedRelation{numColumns: 1, numPairs: relationPairs},
		focus:          vertical.Empty(1),
		sampleSize:     sampleSize,
		populationSize: populationSize,
		counter:        fixedCounter{hits: hits},
		cfg:            newConfig(opts),
	}
}
