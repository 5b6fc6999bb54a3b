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

// Package relation holds the dictionary-encoded, column-oriented view of a
// relation together with its position list indices.
package relation

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/afdiscovery/agreeset-go/internal"
	"github.com/afdiscovery/agreeset-go/vertical"
)

var (
	// ErrRaggedRecord is returned when a record has a different number of
	// fields than the relation has columns.
	ErrRaggedRecord = errors.New("record length does not match column count")
	// ErrNoColumns is returned when the column count cannot be determined or
	// is zero.
	ErrNoColumns = errors.New("relation has no columns")
)

// Option configures a RelationData.
type Option func(*config)

type config struct {
	name string
}

// WithName sets the relation name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// ColumnData is a single dictionary-encoded column.
type ColumnData struct {
	index        int
	name         string
	probingTable []int
	pli          *PositionListIndex
}

// Index returns the column position in the relation.
func (c *ColumnData) Index() int { return c.index }

// Name returns the column name.
func (c *ColumnData) Name() string { return c.name }

// ProbingTable returns the value id of every row. Equal values share an id.
// The result must not be modified.
func (c *ColumnData) ProbingTable() []int { return c.probingTable }

// PLI returns the position list index of the column.
func (c *ColumnData) PLI() *PositionListIndex { return c.pli }

// RelationData is an immutable, column-oriented relation.
type RelationData struct {
	name    string
	columns []*ColumnData
	numRows int
}

// NewRelationData dictionary-encodes records column by column. When
// columnNames is nil the columns are named column1, column2, ... after the
// width of the first record. Empty strings are values like any other, so two
// missing values agree.
func NewRelationData(columnNames []string, records [][]string, opts ...Option) (*RelationData, error) {
	cfg := &config{name: "relation"}
	for _, opt := range opts {
		opt(cfg)
	}

	if columnNames == nil && len(records) > 0 {
		columnNames = make([]string, len(records[0]))
		for i := range columnNames {
			columnNames[i] = fmt.Sprintf("column%d", i+1)
		}
	}
	if len(columnNames) == 0 {
		return nil, ErrNoColumns
	}

	columns := make([]*ColumnData, len(columnNames))
	dictionaries := make([]map[string]int, len(columnNames))
	for i, name := range columnNames {
		columns[i] = &ColumnData{
			index:        i,
			name:         name,
			probingTable: make([]int, len(records)),
		}
		dictionaries[i] = make(map[string]int)
	}

	for row, record := range records {
		if len(record) != len(columnNames) {
			return nil, errors.Wrapf(ErrRaggedRecord, "row %d has %d fields, want %d", row, len(record), len(columnNames))
		}
		for i, value := range record {
			id, ok := dictionaries[i][value]
			if !ok {
				id = len(dictionaries[i])
				dictionaries[i][value] = id
			}
			columns[i].probingTable[row] = id
		}
	}

	for _, c := range columns {
		c.pli = NewPositionListIndex(c.probingTable)
	}

	return &RelationData{
		name:    cfg.name,
		columns: columns,
		numRows: len(records),
	}, nil
}

// Name returns the relation name.
func (r *RelationData) Name() string { return r.name }

// NumRows returns the number of tuples.
func (r *RelationData) NumRows() int { return r.numRows }

// NumColumns returns the number of columns.
func (r *RelationData) NumColumns() int { return len(r.columns) }

// NumTuplePairs returns n·(n−1)/2.
func (r *RelationData) NumTuplePairs() uint64 { return internal.PairsIn(r.numRows) }

// ColumnNames returns the column names in schema order.
func (r *RelationData) ColumnNames() []string {
	names := make([]string, len(r.columns))
	for i, c := range r.columns {
		names[i] = c.name
	}
	return names
}

// Column returns the i-th column.
func (r *RelationData) Column(i int) *ColumnData { return r.columns[i] }

// ProbingValue returns the value id of a cell.
func (r *RelationData) ProbingValue(row, column int) int {
	return r.columns[column].probingTable[row]
}

// EmptyVertical returns the vertical with no columns of this relation.
func (r *RelationData) EmptyVertical() vertical.Vertical {
	return vertical.Empty(len(r.columns))
}

// FullVertical returns the vertical with every column of this relation.
func (r *RelationData) FullVertical() vertical.Vertical {
	return vertical.Full(len(r.columns))
}

// Vertical returns the vertical for the given column indices.
func (r *RelationData) Vertical(columns ...int) (vertical.Vertical, error) {
	return vertical.New(len(r.columns), columns...)
}

// VerticalByName returns the vertical for the given column names.
func (r *RelationData) VerticalByName(names ...string) (vertical.Vertical, error) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		found := -1
		for _, c := range r.columns {
			if c.name == name {
				found = c.index
				break
			}
		}
		if found < 0 {
			return vertical.Vertical{}, errors.Wrapf(vertical.ErrColumnOutOfRange, "unknown column %q", name)
		}
		indices = append(indices, found)
	}
	return r.Vertical(indices...)
}

// PLI computes the position list index of a vertical by intersecting the
// column indices. The empty vertical yields one cluster holding every row.
func (r *RelationData) PLI(v vertical.Vertical) (*PositionListIndex, error) {
	if v.Universe() != len(r.columns) {
		return nil, errors.Wrapf(vertical.ErrColumnOutOfRange, "vertical universe %d, relation has %d columns", v.Universe(), len(r.columns))
	}
	columns := v.Columns()
	if len(columns) == 0 {
		if r.numRows < 2 {
			return newPositionListIndex(nil), nil
		}
		all := make([]int, r.numRows)
		for i := range all {
			all[i] = i
		}
		return newPositionListIndex([][]int{all}), nil
	}
	pli := r.columns[columns[0]].pli
	for _, c := range columns[1:] {
		pli = pli.Intersect(r.columns[c].probingTable)
	}
	return pli, nil
}
