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

// Package vertical implements immutable attribute sets ("verticals") over
// the columns of a relation.
//
// A Vertical is a bit-set paired with the size of the column universe it was
// drawn from. Two verticals are only comparable when their universes match;
// the sampling package rejects queries that mix universes.
package vertical

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// ErrColumnOutOfRange is returned when a column index does not belong to the
// universe of a vertical.
var ErrColumnOutOfRange = errors.New("column index out of range")

// Vertical is an immutable set of column indices.
type Vertical struct {
	bits     *bitset.BitSet
	universe int
}

// New returns the vertical over universe containing the given columns.
func New(universe int, columns ...int) (Vertical, error) {
	if universe < 0 {
		return Vertical{}, errors.Errorf("universe cannot be negative: %d", universe)
	}
	bits := bitset.New(uint(universe))
	for _, c := range columns {
		if c < 0 || c >= universe {
			return Vertical{}, errors.Wrapf(ErrColumnOutOfRange, "column %d, universe %d", c, universe)
		}
		bits.Set(uint(c))
	}
	return Vertical{bits: bits, universe: universe}, nil
}

// Empty returns the vertical with no columns.
func Empty(universe int) Vertical {
	return Vertical{bits: bitset.New(uint(universe)), universe: universe}
}

// Full returns the vertical holding every column of the universe.
func Full(universe int) Vertical {
	bits := bitset.New(uint(universe))
	for c := 0; c < universe; c++ {
		bits.Set(uint(c))
	}
	return Vertical{bits: bits, universe: universe}
}

// FromBitSet copies bits into a new vertical. Bits at or above universe are
// rejected.
func FromBitSet(universe int, bits *bitset.BitSet) (Vertical, error) {
	if bits == nil {
		return Empty(universe), nil
	}
	for c, ok := bits.NextSet(0); ok; c, ok = bits.NextSet(c + 1) {
		if int(c) >= universe {
			return Vertical{}, errors.Wrapf(ErrColumnOutOfRange, "column %d, universe %d", c, universe)
		}
	}
	v := Empty(universe)
	for c, ok := bits.NextSet(0); ok; c, ok = bits.NextSet(c + 1) {
		v.bits.Set(c)
	}
	return v, nil
}

func (v Vertical) set() *bitset.BitSet {
	if v.bits == nil {
		return bitset.New(0)
	}
	return v.bits
}

// Universe returns the number of columns the vertical was drawn from.
func (v Vertical) Universe() int {
	return v.universe
}

// Cardinality returns the number of columns in the vertical.
func (v Vertical) Cardinality() int {
	return int(v.set().Count())
}

// IsEmpty returns true if the vertical holds no column.
func (v Vertical) IsEmpty() bool {
	return v.set().None()
}

// Contains reports whether column c is part of the vertical.
func (v Vertical) Contains(c int) bool {
	return c >= 0 && v.set().Test(uint(c))
}

// Columns returns the column indices in ascending order.
func (v Vertical) Columns() []int {
	bits := v.set()
	columns := make([]int, 0, bits.Count())
	for c, ok := bits.NextSet(0); ok; c, ok = bits.NextSet(c + 1) {
		columns = append(columns, int(c))
	}
	return columns
}

// SameUniverse reports whether both verticals were drawn from the same
// column universe.
func (v Vertical) SameUniverse(other Vertical) bool {
	return v.universe == other.universe
}

// Equal compares by universe and bit pattern.
func (v Vertical) Equal(other Vertical) bool {
	return v.universe == other.universe && slices.Equal(v.Words(), other.Words())
}

// ContainsAll reports whether v is a superset of other.
func (v Vertical) ContainsAll(other Vertical) bool {
	return v.set().IsSuperSet(other.set())
}

// IsSubsetOf reports whether every column of v is in other.
func (v Vertical) IsSubsetOf(other Vertical) bool {
	return other.ContainsAll(v)
}

// Intersects reports whether v and other share at least one column.
func (v Vertical) Intersects(other Vertical) bool {
	return v.set().IntersectionCardinality(other.set()) > 0
}

// Union returns v ∪ other over the universe of v. Columns of other outside
// that universe are dropped.
func (v Vertical) Union(other Vertical) Vertical {
	return Vertical{bits: clip(v.set().Union(other.set()), v.universe), universe: v.universe}
}

// Intersect returns v ∩ other over the universe of v.
func (v Vertical) Intersect(other Vertical) Vertical {
	return Vertical{bits: v.set().Intersection(other.set()), universe: v.universe}
}

// clip clears every bit at or above universe.
func clip(bits *bitset.BitSet, universe int) *bitset.BitSet {
	for c, ok := bits.NextSet(uint(universe)); ok; c, ok = bits.NextSet(c + 1) {
		bits.Clear(c)
	}
	return bits
}

// Without returns the columns of v that are not in other.
func (v Vertical) Without(other Vertical) Vertical {
	return Vertical{bits: v.set().Difference(other.set()), universe: v.universe}
}

// Complement returns the universe columns missing from v.
func (v Vertical) Complement() Vertical {
	return Full(v.universe).Without(v)
}

// BitSet returns a copy of the underlying bits.
func (v Vertical) BitSet() *bitset.BitSet {
	return v.set().Clone()
}

// Words returns a copy of the 64-bit words backing the vertical, trimmed of
// trailing zero words so equal sets yield equal slices.
func (v Vertical) Words() []uint64 {
	words := v.set().Bytes()
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	out := make([]uint64, n)
	copy(out, words[:n])
	return out
}

// Hash returns an xxhash digest of the bit pattern.
func (v Vertical) Hash() uint64 {
	return HashWords(v.Words())
}

// HashWords hashes a trimmed word slice the same way Vertical.Hash does.
func HashWords(words []uint64) uint64 {
	var scratch [8]byte
	d := xxhash.New()
	for _, w := range words {
		binary.LittleEndian.PutUint64(scratch[:], w)
		_, _ = d.Write(scratch[:])
	}
	return d.Sum64()
}

func (v Vertical) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range v.Columns() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteByte(']')
	return sb.String()
}
