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
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/afdiscovery/agreeset-go/internal"
	"github.com/afdiscovery/agreeset-go/internal/binomialproportionsbounds"
	"github.com/afdiscovery/agreeset-go/vertical"
)

// ConfidenceInterval states that the true value lies in [Low, High] with
// probability at least Confidence. Mean is the point estimate.
type ConfidenceInterval struct {
	Low        float64
	Mean       float64
	High       float64
	Confidence float64
}

// Width returns High − Low.
func (ci ConfidenceInterval) Width() float64 {
	return ci.High - ci.Low
}

// Contains reports whether x lies within the interval.
func (ci ConfidenceInterval) Contains(x float64) bool {
	return ci.Low <= x && x <= ci.High
}

// Scale multiplies all three values by f.
func (ci ConfidenceInterval) Scale(f float64) ConfidenceInterval {
	return ConfidenceInterval{Low: ci.Low * f, Mean: ci.Mean * f, High: ci.High * f, Confidence: ci.Confidence}
}

// EstimateAgreements estimates how many tuple pairs of the whole relation
// agree on agreement. agreement must cover the sample's focus.
func (s *AgreeSetSample) EstimateAgreements(agreement vertical.Vertical) (float64, error) {
	if err := s.checkEstimable(agreement); err != nil {
		return 0, err
	}
	return s.observationsToCount(s.counter.CountAgreeing(agreement)), nil
}

// EstimateAgreementsInterval is EstimateAgreements with a confidence interval
// on the number of agreeing tuple pairs.
func (s *AgreeSetSample) EstimateAgreementsInterval(agreement vertical.Vertical, confidence float64) (ConfidenceInterval, error) {
	if err := s.checkEstimable(agreement); err != nil {
		return ConfidenceInterval{}, err
	}
	return s.estimateGivenNumHits(s.counter.CountAgreeing(agreement), confidence)
}

// EstimateMixed estimates, with a confidence interval, how many tuple pairs
// of the relation agree on agreement and disagree on at least one column of
// disagreement: the violations of agreement → disagreement.
func (s *AgreeSetSample) EstimateMixed(agreement, disagreement vertical.Vertical, confidence float64) (ConfidenceInterval, error) {
	if err := s.checkEstimable(agreement); err != nil {
		return ConfidenceInterval{}, err
	}
	if err := checkUniverse(s.relation, disagreement); err != nil {
		return ConfidenceInterval{}, err
	}
	return s.estimateGivenNumHits(s.counter.CountAgreeingDisagreeing(agreement, disagreement), confidence)
}

// EstimateError returns the violation interval of lhs → rhs as a fraction of
// all tuple pairs of the relation (the g1 error).
func (s *AgreeSetSample) EstimateError(lhs, rhs vertical.Vertical, confidence float64) (ConfidenceInterval, error) {
	ci, err := s.EstimateMixed(lhs, rhs, confidence)
	if err != nil {
		return ConfidenceInterval{}, err
	}
	return ci.Scale(1 / float64(s.relation.NumTuplePairs())), nil
}

// HoldsApproximately reports whether lhs → rhs holds with an error of at most
// maxError, judged by the upper bound of the error interval.
func (s *AgreeSetSample) HoldsApproximately(lhs, rhs vertical.Vertical, maxError, confidence float64) (bool, error) {
	if maxError < 0 || maxError > 1 || math.IsNaN(maxError) {
		return false, errors.Wrapf(ErrInvalidArgument, "max error %v outside [0, 1]", maxError)
	}
	ci, err := s.EstimateError(lhs, rhs, confidence)
	if err != nil {
		return false, err
	}
	return ci.High <= maxError, nil
}

func (s *AgreeSetSample) checkEstimable(agreement vertical.Vertical) error {
	if err := checkUniverse(s.relation, agreement); err != nil {
		return err
	}
	if !agreement.ContainsAll(s.focus) {
		return errors.Wrapf(ErrInvalidAttributeSet, "agreement %s does not cover focus %s", agreement, s.focus)
	}
	if s.populationSize == 0 {
		return errors.Wrap(ErrDegenerateStatistics, "empty population")
	}
	if s.sampleSize == 0 {
		return errors.Wrap(ErrDegenerateStatistics, "empty sample")
	}
	return nil
}

// ratioToRelationRatio rescales a ratio over the sampled population to a
// ratio over all tuple pairs of the relation.
func (s *AgreeSetSample) ratioToRelationRatio(ratio float64) float64 {
	return ratio * float64(s.populationSize) / float64(s.relation.NumTuplePairs())
}

// observationsToCount scales sampled observations to a count over the whole
// relation. Exact samples return the observations unchanged.
func (s *AgreeSetSample) observationsToCount(numObservations uint64) float64 {
	if s.IsExact() {
		return float64(numObservations)
	}
	return float64(numObservations) / float64(s.sampleSize) * float64(s.populationSize)
}

// nonNegativeFraction returns (a − b) / populationSize, or 0 when that is
// negative.
func (s *AgreeSetSample) nonNegativeFraction(a, b float64) float64 {
	return math.Max(0, (a-b)/float64(s.populationSize))
}

// probit is the inverse CDF of the standard normal distribution.
func probit(quantile float64) float64 {
	return distuv.UnitNormal.Quantile(quantile)
}

func (s *AgreeSetSample) estimateGivenNumHits(numHits uint64, confidence float64) (ConfidenceInterval, error) {
	if !(confidence > 0 && confidence < 1) {
		return ConfidenceInterval{}, errors.Wrapf(ErrDegenerateStatistics, "confidence %v outside (0, 1)", confidence)
	}
	mean := s.observationsToCount(numHits)
	if s.IsExact() {
		return ConfidenceInterval{Low: mean, Mean: mean, High: mean, Confidence: confidence}, nil
	}

	n := float64(s.sampleSize)
	k := float64(numHits)
	sampleRatio := k / n

	var minRatio, maxRatio float64
	switch s.cfg.intervalMethod {
	case BinomialBoundsMethod:
		kappa := probit((1+confidence)/2) * math.Sqrt(1-s.SamplingRatio())
		lb, err := binomialproportionsbounds.PseudoHypergeometricLowerBoundOnP(s.sampleSize, numHits, kappa)
		if err != nil {
			return ConfidenceInterval{}, err
		}
		ub, err := binomialproportionsbounds.PseudoHypergeometricUpperBoundOnP(s.sampleSize, numHits, kappa)
		if err != nil {
			return ConfidenceInterval{}, err
		}
		minRatio, maxRatio = lb, ub
	default:
		N := float64(s.populationSize)
		fpc := math.Sqrt((N - n) / (N - 1))
		stdDev := math.Sqrt((sampleRatio*(1-sampleRatio)+s.cfg.stdDevSmoothing)/n) * fpc
		z := probit((1 + confidence) / 2)
		minRatio = sampleRatio - z*stdDev
		maxRatio = sampleRatio + z*stdDev
	}

	// Every observed hit and every observed miss exists in the population.
	minRatio = math.Max(minRatio, s.nonNegativeFraction(k, 0))
	maxRatio = math.Min(maxRatio, 1-s.nonNegativeFraction(n, k))
	minRatio = internal.Clamp(math.Min(minRatio, sampleRatio), 0, 1)
	maxRatio = internal.Clamp(math.Max(maxRatio, sampleRatio), 0, 1)

	pairs := float64(s.relation.NumTuplePairs())
	return ConfidenceInterval{
		Low:        math.Min(s.ratioToRelationRatio(minRatio)*pairs, mean),
		Mean:       mean,
		High:       math.Max(s.ratioToRelationRatio(maxRatio)*pairs, mean),
		Confidence: confidence,
	}, nil
}
