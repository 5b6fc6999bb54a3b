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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afdiscovery/agreeset-go/relation"
	"github.com/afdiscovery/agreeset-go/vertical"
)

func TestNewSampleExact(t *testing.T) {
	rel := newTenRowRelation(t)

	sample, err := NewSample(rel, 1000, nil)
	require.NoError(t, err)
	assert.True(t, sample.IsExact())
	assert.Equal(t, uint64(45), sample.SampleSize())
	assert.Equal(t, uint64(45), sample.PopulationSize())
	assert.Equal(t, 1.0, sample.SamplingRatio())
	assert.True(t, sample.Focus().IsEmpty())
	assert.Equal(t, ListRepresentation, sample.Representation())
	assert.Same(t, rel, sample.Relation())

	var total uint64
	for _, e := range sample.AgreeSets() {
		total += e.Count
	}
	assert.Equal(t, uint64(45), total)

	a := mustVertical(t, rel, 0)
	b := mustVertical(t, rel, 1)
	c := mustVertical(t, rel, 2)

	testCases := []struct {
		name         string
		agreement    vertical.Vertical
		disagreement vertical.Vertical
		agreeing     uint64
		violating    uint64
	}{
		{name: "A", agreement: a, disagreement: b, agreeing: 12, violating: 8},
		{name: "B", agreement: b, disagreement: a, agreeing: 4, violating: 0},
		{name: "C", agreement: c, disagreement: a, agreeing: 20, violating: 16},
		{name: "AB", agreement: a.Union(b), disagreement: c, agreeing: 4, violating: 4},
		{name: "empty", agreement: rel.EmptyVertical(), disagreement: rel.EmptyVertical(), agreeing: 45, violating: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agreeing, err := sample.CountAgreeing(tc.agreement)
			require.NoError(t, err)
			assert.Equal(t, tc.agreeing, agreeing)

			violating, err := sample.CountAgreeingDisagreeing(tc.agreement, tc.disagreement)
			require.NoError(t, err)
			assert.Equal(t, tc.violating, violating)
		})
	}
}

func TestExactSampleMatchesBruteForce(t *testing.T) {
	rel := newModuloRelation(t, 60)

	t.Run("Unrestricted", func(t *testing.T) {
		sample, err := NewSample(rel, int(rel.NumTuplePairs()), NewRandomSource(1))
		require.NoError(t, err)
		require.True(t, sample.IsExact())

		for _, agreement := range allVerticals(t, rel) {
			for _, disagreement := range allVerticals(t, rel) {
				wantAgreeing, wantViolating := bruteForceCounts(rel, rel.EmptyVertical(), agreement, disagreement)
				agreeing, err := sample.CountAgreeing(agreement)
				require.NoError(t, err)
				violating, err := sample.CountAgreeingDisagreeing(agreement, disagreement)
				require.NoError(t, err)
				assert.Equal(t, wantAgreeing, agreeing, "agreement %s", agreement)
				assert.Equal(t, wantViolating, violating, "%s / %s", agreement, disagreement)
			}
		}
	})

	t.Run("Focused", func(t *testing.T) {
		focus := mustVertical(t, rel, 2)
		pli, err := rel.PLI(focus)
		require.NoError(t, err)
		sample, err := NewFocusedSample(rel, focus, pli, 1_000_000, nil)
		require.NoError(t, err)
		require.True(t, sample.IsExact())
		assert.Equal(t, pli.NumNonSingletonPairs(), sample.PopulationSize())

		for _, v := range allVerticals(t, rel) {
			agreement := v.Union(focus)
			want, _ := bruteForceCounts(rel, focus, agreement, rel.EmptyVertical())
			got, err := sample.CountAgreeing(agreement)
			require.NoError(t, err)
			assert.Equal(t, want, got, "agreement %s", agreement)

			estimate, err := sample.EstimateAgreements(agreement)
			require.NoError(t, err)
			assert.Equal(t, float64(want), estimate)
		}
	})
}

func TestNewSampleDraws(t *testing.T) {
	rel := newModuloRelation(t, 300)

	sample, err := NewSample(rel, 500, NewRandomSource(7))
	require.NoError(t, err)
	assert.False(t, sample.IsExact())
	assert.Equal(t, uint64(500), sample.SampleSize())
	assert.Equal(t, rel.NumTuplePairs(), sample.PopulationSize())
	assert.InDelta(t, 500.0/float64(rel.NumTuplePairs()), sample.SamplingRatio(), 1e-12)

	var total uint64
	for _, e := range sample.AgreeSets() {
		total += e.Count
	}
	assert.Equal(t, uint64(500), total)
}

func TestFocusedSampleOnlyDrawsAgreeingPairs(t *testing.T) {
	rel := newModuloRelation(t, 400)
	focus := mustVertical(t, rel, 0)
	pli, err := rel.PLI(focus)
	require.NoError(t, err)

	sample, err := NewFocusedSample(rel, focus, pli, 300, NewRandomSource(3))
	require.NoError(t, err)
	assert.False(t, sample.IsExact())
	assert.Equal(t, uint64(300), sample.SampleSize())
	assert.Equal(t, uint64(10*780), sample.PopulationSize())

	for _, e := range sample.AgreeSets() {
		assert.True(t, e.AgreeSet.ContainsAll(focus), "agree set %s", e.AgreeSet)
	}
	agreeing, err := sample.CountAgreeing(focus)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), agreeing)
}

func TestSampleReproducibility(t *testing.T) {
	rel := newConstantFirstColumnRelation(t)
	focus := mustVertical(t, rel, 0)
	pli, err := rel.PLI(focus)
	require.NoError(t, err)
	require.Equal(t, uint64(45), pli.NumNonSingletonPairs())

	build := func() *AgreeSetSample {
		sample, err := NewFocusedSample(rel, focus, pli, 10, NewRandomSource(42))
		require.NoError(t, err)
		return sample
	}
	first, second := build(), build()

	assert.Equal(t, uint64(10), first.SampleSize())
	assert.Equal(t, uint64(45), first.PopulationSize())
	assert.Equal(t, first.AgreeSets(), second.AgreeSets())

	for _, v := range allVerticals(t, rel) {
		agreement := v.Union(focus)
		ci1, err := first.EstimateAgreementsInterval(agreement, 0.9)
		require.NoError(t, err)
		ci2, err := second.EstimateAgreementsInterval(agreement, 0.9)
		require.NoError(t, err)
		assert.Equal(t, ci1, ci2)
	}

	other, err := NewFocusedSample(rel, focus, pli, 10, NewRandomSource(43))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), other.SampleSize())
}

func TestUnrestrictedSampleReproducibility(t *testing.T) {
	rel := newModuloRelation(t, 500)
	first, err := NewSample(rel, 1000, NewRandomSource(11))
	require.NoError(t, err)
	second, err := NewSample(rel, 1000, NewRandomSource(11))
	require.NoError(t, err)
	assert.Equal(t, first.AgreeSets(), second.AgreeSets())
}

func TestCountingProperties(t *testing.T) {
	rel := newModuloRelation(t, 200)
	sample, err := NewSample(rel, 2000, NewRandomSource(5))
	require.NoError(t, err)
	verticals := allVerticals(t, rel)

	for _, a := range verticals {
		agreeing, err := sample.CountAgreeing(a)
		require.NoError(t, err)
		again, err := sample.CountAgreeing(a)
		require.NoError(t, err)
		assert.Equal(t, agreeing, again)

		batch, err := sample.CountAgreeingBatch(a, verticals)
		require.NoError(t, err)
		require.Len(t, batch, len(verticals))

		for i, d := range verticals {
			violating, err := sample.CountAgreeingDisagreeing(a, d)
			require.NoError(t, err)
			assert.LessOrEqual(t, violating, agreeing)
			assert.Equal(t, violating, batch[i], "%s / %s", a, d)
		}
	}

	empty, err := sample.CountAgreeingBatch(rel.EmptyVertical(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSampleErrors(t *testing.T) {
	rel := newTenRowRelation(t)
	foreign := vertical.Empty(5)

	t.Run("NegativeSampleSize", func(t *testing.T) {
		_, err := NewSample(rel, -1, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidSampleSize)
	})

	t.Run("NilCollaborators", func(t *testing.T) {
		_, err := NewSample(nil, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewSample(rel, 10, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewFocusedSample(rel, rel.EmptyVertical(), nil, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewFocusedSample(nil, rel.EmptyVertical(), nil, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("ForeignRestriction", func(t *testing.T) {
		pli, err := rel.PLI(rel.EmptyVertical())
		require.NoError(t, err)
		_, err = NewFocusedSample(rel, foreign, pli, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidAttributeSet)
	})

	t.Run("InconsistentPartition", func(t *testing.T) {
		_, err := NewFocusedSample(rel, rel.EmptyVertical(), lyingPartition{}, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("PartitionRowOutOfRange", func(t *testing.T) {
		pli := fixedPartition{clusters: [][]int{{0, 99}}}
		assert.NotPanics(t, func() {
			_, err := NewFocusedSample(rel, rel.EmptyVertical(), pli, 10, NewRandomSource(1))
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
		pli = fixedPartition{clusters: [][]int{{-1, 3}}}
		_, err := NewFocusedSample(rel, rel.EmptyVertical(), pli, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("PartitionRowRepeated", func(t *testing.T) {
		pli := fixedPartition{clusters: [][]int{{0, 1}, {1, 2}}}
		_, err := NewFocusedSample(rel, rel.EmptyVertical(), pli, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("PartitionOfAnotherVertical", func(t *testing.T) {
		pli, err := rel.PLI(mustVertical(t, rel, 0))
		require.NoError(t, err)
		c := mustVertical(t, rel, 2)

		_, err = NewFocusedSample(rel, c, pli, 100, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		// 8 of the 12 pairs disagree on C, so any 6 of them include one.
		_, err = NewFocusedSample(rel, c, pli, 6, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("PopulationLargerThanRelation", func(t *testing.T) {
		pli, err := rel.PLI(rel.EmptyVertical())
		require.NoError(t, err)
		small := fixedRelation{numColumns: rel.NumColumns(), numPairs: 3}
		_, err = NewFocusedSample(small, rel.EmptyVertical(), pli, 10, NewRandomSource(1))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("TrieRepresentation", func(t *testing.T) {
		_, err := NewSample(rel, 10, NewRandomSource(1), WithRepresentation(TrieRepresentation))
		assert.ErrorIs(t, err, ErrUnsupportedRepresentation)
	})

	t.Run("ForeignQuery", func(t *testing.T) {
		sample, err := NewSample(rel, 10, NewRandomSource(1))
		require.NoError(t, err)

		_, err = sample.CountAgreeing(foreign)
		assert.ErrorIs(t, err, ErrInvalidAttributeSet)
		_, err = sample.CountAgreeingDisagreeing(rel.EmptyVertical(), foreign)
		assert.ErrorIs(t, err, ErrInvalidAttributeSet)
		_, err = sample.CountAgreeingBatch(rel.EmptyVertical(), []vertical.Vertical{rel.FullVertical(), foreign})
		assert.ErrorIs(t, err, ErrInvalidAttributeSet)
		_, err = sample.CountAgreeingBatch(foreign, nil)
		assert.ErrorIs(t, err, ErrInvalidAttributeSet)
	})
}

func TestSampleOfTinyRelation(t *testing.T) {
	rel, err := relation.NewRelationData([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)

	sample, err := NewSample(rel, 10, nil)
	require.NoError(t, err)
	assert.True(t, sample.IsExact())
	assert.Equal(t, uint64(0), sample.PopulationSize())
	assert.Equal(t, 1.0, sample.SamplingRatio())

	_, err = sample.EstimateAgreements(rel.EmptyVertical())
	assert.ErrorIs(t, err, ErrDegenerateStatistics)
}

func TestSampleLogging(t *testing.T) {
	rel := newTenRowRelation(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := NewSample(rel, 100, nil, WithLogger(logger))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "agree set sample created", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, true, entry.Data["exact"])
	assert.Equal(t, uint64(45), entry.Data["populationSize"])
	assert.Equal(t, "list", entry.Data["representation"])
}

// lyingPartition reports more pairs than its clusters hold.
type lyingPartition struct{}

func (lyingPartition) Clusters() [][]int { return [][]int{{0, 1, 2}} }

func (lyingPartition) NumNonSingletonPairs() uint64 { return 7 }

// fixedPartition reports exactly the pairs its clusters hold.
type fixedPartition struct {
	clusters [][]int
}

func (f fixedPartition) Clusters() [][]int { return f.clusters }

func (f fixedPartition) NumNonSingletonPairs() uint64 {
	var pairs uint64
	for _, c := range f.clusters {
		n := uint64(len(c))
		pairs += n * (n - 1) / 2
	}
	return pairs
}
