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

package internal

import (
	"math"

	"golang.org/x/exp/constraints"
)

// PairsIn returns C(n, 2), the number of unordered pairs among n items.
func PairsIn[T constraints.Integer](n T) uint64 {
	if n < 2 {
		return 0
	}
	m := uint64(n)
	if m%2 == 0 {
		return (m / 2) * (m - 1)
	}
	return m * ((m - 1) / 2)
}

// pairStart returns the number of pairs (i, j), i < j, whose first member is
// below row, among m items.
func pairStart(row, m uint64) uint64 {
	// row*(2m-row-1)/2, one of the two factors is even.
	a, b := row, 2*m-row-1
	if a%2 == 0 {
		return (a / 2) * b
	}
	return a * (b / 2)
}

// PairAt decodes the triangular index t of the pair (i, j), i < j, among m
// items, with pairs enumerated row by row: (0,1), (0,2), ..., (1,2), ...
// t must be below PairsIn(m).
func PairAt(t, m uint64) (int, int) {
	// Float estimate of the row, corrected with exact integer arithmetic.
	fm := float64(m)
	disc := (2*fm-1)*(2*fm-1) - 8*float64(t)
	est := math.Floor(((2*fm - 1) - math.Sqrt(math.Max(disc, 0))) / 2)
	i := uint64(0)
	if est > 0 {
		i = uint64(est)
	}
	if i > m-2 {
		i = m - 2
	}
	for i > 0 && pairStart(i, m) > t {
		i--
	}
	for i+1 < m-1 && pairStart(i+1, m) <= t {
		i++
	}
	j := i + 1 + (t - pairStart(i, m))
	return int(i), int(j)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
