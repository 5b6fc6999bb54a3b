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

// Package binomialproportionsbounds approximates Clopper-Pearson confidence
// bounds for a binomial proportion, and their pseudo-hypergeometric variant
// for samples drawn without replacement.
//
// n is the number of trials (sampled tuple pairs), k the number of successes
// (pairs that hit a query), and p = k/n estimates the unknown success
// probability. The confidence level is given as a number of standard
// deviations of the standard normal distribution.
package binomialproportionsbounds

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// ApproximateLowerBoundOnP returns the lower bound on p. It solves
// I_x(n−k+1, k) = 1 − delta for x = 1 − p, with delta the right tail beyond
// numStdDevs.
func ApproximateLowerBoundOnP(n, k uint64, numStdDevs float64) (float64, error) {
	if err := validateInputs(n, k); err != nil {
		return 0, err
	}
	switch {
	case n == 0, k == 0:
		return 0.0, nil
	case k == 1:
		return 1.0 - math.Pow(1.0-deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	case k == n:
		return math.Pow(deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	}
	x := abramowitzStegunFormula26p5p22(float64((n-k)+1), float64(k), -1.0*numStdDevs)
	return 1.0 - x, nil
}

// ApproximateUpperBoundOnP returns the upper bound on p.
func ApproximateUpperBoundOnP(n, k uint64, numStdDevs float64) (float64, error) {
	if err := validateInputs(n, k); err != nil {
		return 0, err
	}
	switch {
	case n == 0, k == n:
		return 1.0, nil
	case k == n-1:
		return math.Pow(1.0-deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	case k == 0:
		return 1.0 - math.Pow(deltaOfNumStdDevs(numStdDevs), 1.0/float64(n)), nil
	}
	x := abramowitzStegunFormula26p5p22(float64(n-k), float64(k+1), numStdDevs)
	return 1.0 - x, nil
}

// PseudoHypergeometricLowerBoundOnP is ApproximateLowerBoundOnP for a sample
// drawn without replacement. numStdDevs is expected to already carry the
// finite population correction sqrt(1 − samplingRate).
func PseudoHypergeometricLowerBoundOnP(n, k uint64, numStdDevs float64) (float64, error) {
	if numStdDevs <= 0 {
		return pointEstimate(n, k)
	}
	return ApproximateLowerBoundOnP(n, k, numStdDevs)
}

// PseudoHypergeometricUpperBoundOnP is the upper counterpart of
// PseudoHypergeometricLowerBoundOnP.
func PseudoHypergeometricUpperBoundOnP(n, k uint64, numStdDevs float64) (float64, error) {
	if numStdDevs <= 0 {
		return pointEstimate(n, k)
	}
	return ApproximateUpperBoundOnP(n, k, numStdDevs)
}

// NormalCDF returns the standard normal CDF at x.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func pointEstimate(n, k uint64) (float64, error) {
	if err := validateInputs(n, k); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	return float64(k) / float64(n), nil
}

func validateInputs(n, k uint64) error {
	if k > n {
		return errors.Errorf("K cannot exceed N: n=%d, k=%d", n, k)
	}
	return nil
}

func deltaOfNumStdDevs(kappa float64) float64 {
	return NormalCDF(-1.0 * kappa)
}

// abramowitzStegunFormula26p5p22 approximates the inverse of the incomplete
// beta function I_x(a, b) = delta, where delta is the right tail of the
// standard normal beyond yp (Abramowitz & Stegun 26.5.22, p. 945). The
// variable names follow the book.
func abramowitzStegunFormula26p5p22(a, b, yp float64) float64 {
	b2m1 := (2.0 * b) - 1.0
	a2m1 := (2.0 * a) - 1.0
	lambda := ((yp * yp) - 3.0) / 6.0
	htmp := (1.0 / a2m1) + (1.0 / b2m1)
	h := 2.0 / htmp
	term1 := (yp * math.Sqrt(h+lambda)) / h
	term2 := (1.0 / b2m1) - (1.0 / a2m1)
	term3 := (lambda + (5.0 / 6.0)) - (2.0 / (3.0 * h))
	w := term1 - (term2 * term3)
	return a / (a + (b * math.Exp(2.0*w)))
}
