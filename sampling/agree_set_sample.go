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
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/afdiscovery/agreeset-go/vertical"
)

// Relation is the read-only view of a relation a sample is drawn from.
// *relation.RelationData satisfies it.
type Relation interface {
	NumRows() int
	NumColumns() int
	// NumTuplePairs returns n·(n−1)/2.
	NumTuplePairs() uint64
	// ProbingValue returns the value id of a cell; equal ids mean equal
	// values.
	ProbingValue(row, column int) int
}

// PartitionIndex groups rows that agree on some vertical.
// *relation.PositionListIndex satisfies it.
type PartitionIndex interface {
	// Clusters returns the groups of agreeing rows. Groups of fewer than two
	// rows contribute no pairs.
	Clusters() [][]int
	// NumNonSingletonPairs returns the sum of C(|c|, 2) over all clusters.
	NumNonSingletonPairs() uint64
}

// AgreeSetSample is a sample of tuple pairs, each reduced to its agree set.
//
// The sample is drawn from a population of pairs: all pairs of the relation,
// or, for a focused sample, only the pairs agreeing on the focus. Estimates
// are always scaled back to the whole relation.
type AgreeSetSample struct {
	relation       Relation
	focus          vertical.Vertical
	sampleSize     uint64
	populationSize uint64
	counter        AgreeSetCounter
	cfg            *config
}

// NewSample draws sampleSize distinct tuple pairs uniformly from all pairs of
// rel. When sampleSize reaches the number of tuple pairs every pair is taken
// and the sample is exact; random may then be nil.
func NewSample(rel Relation, sampleSize int, random RandomSource, opts ...Option) (*AgreeSetSample, error) {
	if rel == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "relation is nil")
	}
	pop := newUnrestrictedPopulation(rel.NumRows())
	return newAgreeSetSample(rel, vertical.Empty(rel.NumColumns()), pop, sampleSize, random, newConfig(opts))
}

// NewFocusedSample draws sampleSize distinct tuple pairs from the pairs that
// agree on restriction, as grouped by pli, the partition index of
// restriction. Every sampled pair agrees on restriction. A partition that
// names rows outside rel, repeats a row, or yields a pair disagreeing on
// restriction fails with ErrInvalidArgument.
func NewFocusedSample(rel Relation, restriction vertical.Vertical, pli PartitionIndex, sampleSize int, random RandomSource, opts ...Option) (*AgreeSetSample, error) {
	if rel == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "relation is nil")
	}
	if pli == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "partition index is nil")
	}
	if err := checkUniverse(rel, restriction); err != nil {
		return nil, err
	}
	clusters := pli.Clusters()
	pop := newClusteredPopulation(clusters)
	if pop.total != pli.NumNonSingletonPairs() {
		return nil, errors.Wrapf(ErrInvalidArgument, "partition index reports %d pairs, clusters hold %d", pli.NumNonSingletonPairs(), pop.total)
	}
	if pop.total > rel.NumTuplePairs() {
		return nil, errors.Wrapf(ErrInvalidArgument, "partition index holds %d pairs, relation only %d", pop.total, rel.NumTuplePairs())
	}
	if err := checkPartition(clusters, rel.NumRows()); err != nil {
		return nil, err
	}
	return newAgreeSetSample(rel, restriction, pop, sampleSize, random, newConfig(opts))
}

func newAgreeSetSample(rel Relation, focus vertical.Vertical, pop *population, sampleSize int, random RandomSource, cfg *config) (*AgreeSetSample, error) {
	if sampleSize < 0 {
		return nil, errors.Wrapf(ErrInvalidSampleSize, "sample size %d", sampleSize)
	}
	if cfg.representation != ListRepresentation {
		return nil, errors.Wrapf(ErrUnsupportedRepresentation, "%s", cfg.representation)
	}

	aggregator := newAgreeSetAggregator(rel.NumColumns())
	size := uint64(sampleSize)
	if size >= pop.total {
		size = pop.total
		pop.forEachPair(func(a, b int) {
			aggregator.addPair(rel, a, b)
		})
	} else {
		if size > 0 && random == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "random source is nil")
		}
		for _, t := range pop.drawIndices(size, random) {
			a, b := pop.pair(t)
			aggregator.addPair(rel, a, b)
		}
	}

	agreeSets := aggregator.result()
	for _, e := range agreeSets {
		if !e.AgreeSet.ContainsAll(focus) {
			return nil, errors.Wrapf(ErrInvalidArgument, "%d sampled pairs agree on %s, not on focus %s", e.Count, e.AgreeSet, focus)
		}
	}

	s := &AgreeSetSample{
		relation:       rel,
		focus:          focus,
		sampleSize:     size,
		populationSize: pop.total,
		counter:        newListAgreeSetCounter(agreeSets),
		cfg:            cfg,
	}
	cfg.logger.WithFields(logrus.Fields{
		"focus":          focus.String(),
		"sampleSize":     s.sampleSize,
		"populationSize": s.populationSize,
		"exact":          s.IsExact(),
		"agreeSets":      s.counter.NumAgreeSets(),
		"representation": cfg.representation.String(),
	}).Debug("agree set sample created")
	return s, nil
}

// checkPartition verifies that clusters hold rows of the relation and that no
// row belongs to two clusters.
func checkPartition(clusters [][]int, numRows int) error {
	seen := bitset.New(uint(max(numRows, 0)))
	for _, c := range clusters {
		for _, r := range c {
			if r < 0 || r >= numRows {
				return errors.Wrapf(ErrInvalidArgument, "partition row %d outside [0, %d)", r, numRows)
			}
			if seen.Test(uint(r)) {
				return errors.Wrapf(ErrInvalidArgument, "partition row %d appears twice", r)
			}
			seen.Set(uint(r))
		}
	}
	return nil
}

func checkUniverse(rel Relation, verticals ...vertical.Vertical) error {
	for _, v := range verticals {
		if v.Universe() != rel.NumColumns() {
			return errors.Wrapf(ErrInvalidAttributeSet, "vertical %s has universe %d, relation has %d columns", v, v.Universe(), rel.NumColumns())
		}
	}
	return nil
}

// Relation returns the relation the sample was drawn from.
func (s *AgreeSetSample) Relation() Relation { return s.relation }

// Focus returns the vertical every sampled pair agrees on. It is empty for
// unrestricted samples.
func (s *AgreeSetSample) Focus() vertical.Vertical { return s.focus }

// SampleSize returns the number of tuple pairs drawn.
func (s *AgreeSetSample) SampleSize() uint64 { return s.sampleSize }

// PopulationSize returns the number of tuple pairs eligible for sampling.
func (s *AgreeSetSample) PopulationSize() uint64 { return s.populationSize }

// Representation returns how the agree sets are stored.
func (s *AgreeSetSample) Representation() Representation { return s.cfg.representation }

// IsExact returns true if every pair of the population was sampled.
func (s *AgreeSetSample) IsExact() bool { return s.sampleSize == s.populationSize }

// SamplingRatio returns sampleSize / populationSize. An empty population
// counts as fully sampled.
func (s *AgreeSetSample) SamplingRatio() float64 {
	if s.populationSize == 0 {
		return 1
	}
	return float64(s.sampleSize) / float64(s.populationSize)
}

// AgreeSets returns the distinct agree sets of the sample with their counts.
// Samples built from the same relation, restriction, size and seed return
// identical slices.
func (s *AgreeSetSample) AgreeSets() []AgreeSetCount {
	return s.counter.AgreeSets()
}

// CountAgreeing returns the number of sampled pairs agreeing on at least the
// columns of agreement.
func (s *AgreeSetSample) CountAgreeing(agreement vertical.Vertical) (uint64, error) {
	if err := checkUniverse(s.relation, agreement); err != nil {
		return 0, err
	}
	return s.counter.CountAgreeing(agreement), nil
}

// CountAgreeingDisagreeing returns the number of sampled pairs agreeing on all
// of agreement while disagreeing on at least one column of disagreement, that
// is, the sampled violations of agreement → disagreement.
func (s *AgreeSetSample) CountAgreeingDisagreeing(agreement, disagreement vertical.Vertical) (uint64, error) {
	if err := checkUniverse(s.relation, agreement, disagreement); err != nil {
		return 0, err
	}
	return s.counter.CountAgreeingDisagreeing(agreement, disagreement), nil
}

// CountAgreeingBatch returns CountAgreeingDisagreeing(agreement, d) for every
// d in disagreements.
func (s *AgreeSetSample) CountAgreeingBatch(agreement vertical.Vertical, disagreements []vertical.Vertical) ([]uint64, error) {
	if err := checkUniverse(s.relation, agreement); err != nil {
		return nil, err
	}
	if err := checkUniverse(s.relation, disagreements...); err != nil {
		return nil, err
	}
	return s.counter.CountAgreeingBatch(agreement, disagreements), nil
}
