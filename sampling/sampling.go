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

// Package sampling draws agree-set samples of tuple pairs from a relation and
// turns sample hit counts into estimates of how many tuple pairs of the whole
// relation agree (or agree and disagree) on given column combinations.
//
// A sample is drawn either over all n·(n−1)/2 tuple pairs (NewSample) or
// focused on the pairs that already agree on a restriction vertical
// (NewFocusedSample), which keeps estimates for deep column combinations
// meaningful. Samples are immutable once built and safe for concurrent use.
package sampling

import "fmt"

// Representation selects how a sample stores its agree sets.
type Representation int

const (
	// ListRepresentation keeps one (agree set, count) entry per distinct agree
	// set and answers queries with a linear scan.
	ListRepresentation Representation = iota
	// TrieRepresentation is reserved for a prefix-tree layout and is not
	// available yet.
	TrieRepresentation
)

func (r Representation) String() string {
	switch r {
	case ListRepresentation:
		return "list"
	case TrieRepresentation:
		return "trie"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// IntervalMethod selects how confidence intervals are derived from hits.
type IntervalMethod int

const (
	// NormalApproximationMethod uses the normal approximation of a proportion
	// with finite population correction.
	NormalApproximationMethod IntervalMethod = iota
	// BinomialBoundsMethod uses pseudo-hypergeometric binomial proportion
	// bounds.
	BinomialBoundsMethod
)

func (m IntervalMethod) String() string {
	switch m {
	case NormalApproximationMethod:
		return "normal"
	case BinomialBoundsMethod:
		return "binomial"
	default:
		return fmt.Sprintf("IntervalMethod(%d)", int(m))
	}
}
