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
	"github.com/afdiscovery/agreeset-go/vertical"
)

// listAgreeSetCounter keeps the distinct agree sets of a sample in a slice
// and scans it for every query.
type listAgreeSetCounter struct {
	agreeSets []AgreeSetCount
}

func newListAgreeSetCounter(agreeSets []AgreeSetCount) *listAgreeSetCounter {
	return &listAgreeSetCounter{agreeSets: agreeSets}
}

func (l *listAgreeSetCounter) CountAgreeing(agreement vertical.Vertical) uint64 {
	var count uint64
	for _, e := range l.agreeSets {
		if e.AgreeSet.ContainsAll(agreement) {
			count += e.Count
		}
	}
	return count
}

func (l *listAgreeSetCounter) CountAgreeingDisagreeing(agreement, disagreement vertical.Vertical) uint64 {
	var count uint64
	for _, e := range l.agreeSets {
		if e.AgreeSet.ContainsAll(agreement) && !e.AgreeSet.ContainsAll(disagreement) {
			count += e.Count
		}
	}
	return count
}

// CountAgreeingBatch tests the agreement once per agree set and shares that
// scan across all disagreements.
func (l *listAgreeSetCounter) CountAgreeingBatch(agreement vertical.Vertical, disagreements []vertical.Vertical) []uint64 {
	counts := make([]uint64, len(disagreements))
	for _, e := range l.agreeSets {
		if !e.AgreeSet.ContainsAll(agreement) {
			continue
		}
		for i, d := range disagreements {
			if !e.AgreeSet.ContainsAll(d) {
				counts[i] += e.Count
			}
		}
	}
	return counts
}

func (l *listAgreeSetCounter) NumAgreeSets() int {
	return len(l.agreeSets)
}

func (l *listAgreeSetCounter) AgreeSets() []AgreeSetCount {
	out := make([]AgreeSetCount, len(l.agreeSets))
	copy(out, l.agreeSets)
	return out
}
