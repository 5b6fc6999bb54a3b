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
	"cmp"
	"slices"

	"github.com/afdiscovery/agreeset-go/vertical"
)

// AgreeSetCount is a distinct agree set together with the number of sampled
// pairs that produced it.
type AgreeSetCount struct {
	AgreeSet vertical.Vertical
	Count    uint64
}

// AgreeSetCounter answers agreement queries over the agree sets of a sample.
// Implementations are free in how they store the agree sets; verticals passed
// in have already been checked against the relation.
type AgreeSetCounter interface {
	// CountAgreeing returns the number of sampled pairs whose agree set
	// contains agreement.
	CountAgreeing(agreement vertical.Vertical) uint64
	// CountAgreeingDisagreeing returns the number of sampled pairs that agree
	// on all of agreement and disagree on at least one column of
	// disagreement.
	CountAgreeingDisagreeing(agreement, disagreement vertical.Vertical) uint64
	// CountAgreeingBatch is CountAgreeingDisagreeing for several
	// disagreements at once.
	CountAgreeingBatch(agreement vertical.Vertical, disagreements []vertical.Vertical) []uint64
	// NumAgreeSets returns the number of distinct agree sets stored.
	NumAgreeSets() int
	// AgreeSets returns the stored agree sets in a deterministic order.
	AgreeSets() []AgreeSetCount
}

// agreeSetAggregator collects the agree sets of sampled pairs, merging equal
// ones. Agree sets are keyed by the xxhash of their words and chained on
// collision.
type agreeSetAggregator struct {
	universe int
	words    []uint64 // scratch
	buckets  map[uint64][]int
	entries  []aggregatedAgreeSet
}

type aggregatedAgreeSet struct {
	words []uint64
	count uint64
}

func newAgreeSetAggregator(universe int) *agreeSetAggregator {
	return &agreeSetAggregator{
		universe: universe,
		words:    make([]uint64, (universe+63)/64),
		buckets:  make(map[uint64][]int),
	}
}

// addPair computes the agree set of rows a and b and counts it.
func (g *agreeSetAggregator) addPair(rel Relation, a, b int) {
	clear(g.words)
	for c := 0; c < g.universe; c++ {
		if rel.ProbingValue(a, c) == rel.ProbingValue(b, c) {
			g.words[c/64] |= 1 << (uint(c) % 64)
		}
	}
	g.add(g.words, 1)
}

func (g *agreeSetAggregator) add(words []uint64, count uint64) {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	trimmed := words[:n]
	h := vertical.HashWords(trimmed)
	for _, idx := range g.buckets[h] {
		if slices.Equal(g.entries[idx].words, trimmed) {
			g.entries[idx].count += count
			return
		}
	}
	g.buckets[h] = append(g.buckets[h], len(g.entries))
	g.entries = append(g.entries, aggregatedAgreeSet{words: slices.Clone(trimmed), count: count})
}

// result returns the agree sets ordered by descending count, ties broken by
// ascending word pattern.
func (g *agreeSetAggregator) result() []AgreeSetCount {
	entries := slices.Clone(g.entries)
	slices.SortFunc(entries, func(x, y aggregatedAgreeSet) int {
		if c := cmp.Compare(y.count, x.count); c != 0 {
			return c
		}
		return slices.Compare(x.words, y.words)
	})
	out := make([]AgreeSetCount, len(entries))
	for i, e := range entries {
		out[i] = AgreeSetCount{AgreeSet: wordsToVertical(g.universe, e.words), Count: e.count}
	}
	return out
}

func wordsToVertical(universe int, words []uint64) vertical.Vertical {
	var columns []int
	for w, word := range words {
		for b := 0; b < 64; b++ {
			if word&(1<<uint(b)) != 0 {
				columns = append(columns, w*64+b)
			}
		}
	}
	// columns come from probing values of this universe
	v, _ := vertical.New(universe, columns...)
	return v
}
