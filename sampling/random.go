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
	"math/rand/v2"

	"github.com/afdiscovery/agreeset-go/internal"
	"github.com/afdiscovery/agreeset-go/vertical"
)

// RandomSource is a reproducible stream of uniform draws. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	// Uint64N returns a uniform value in [0, n).
	Uint64N(n uint64) uint64
}

// NewRandomSource returns a PCG stream fully determined by seed.
func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(internal.MixSeed(seed, nil), uint64(seed)))
}

// DeriveRandomSource returns the stream used for one restriction when many
// samples are drawn from a single top-level seed. Distinct restrictions get
// independent streams; the same restriction always gets the same one.
func DeriveRandomSource(seed int64, restriction vertical.Vertical) *rand.Rand {
	return rand.New(rand.NewPCG(internal.MixSeed(seed, restriction.Words()), uint64(seed)^uint64(restriction.Universe())))
}
