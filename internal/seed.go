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
	"encoding/binary"

	"github.com/twmb/murmur3"
)

// DefaultSamplingSeed seeds murmur3 when mixing sampling seeds.
const DefaultSamplingSeed = uint64(9001)

// MixSeed derives a 64-bit seed from a top-level seed and a word pattern,
// so that each pattern gets an independent but reproducible stream.
func MixSeed(seed int64, words []uint64) uint64 {
	buf := make([]byte, 8*(len(words)+1))
	binary.LittleEndian.PutUint64(buf, uint64(seed))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], w)
	}
	return murmur3.SeedSum64(DefaultSamplingSeed, buf)
}
