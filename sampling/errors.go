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

import "github.com/pkg/errors"

var (
	// ErrInvalidAttributeSet is returned for verticals that do not belong to
	// the sampled relation, or that do not cover a sample's focus.
	ErrInvalidAttributeSet = errors.New("invalid attribute set")
	// ErrInvalidSampleSize is returned for negative sample sizes.
	ErrInvalidSampleSize = errors.New("invalid sample size")
	// ErrDegenerateStatistics is returned when an estimate is requested
	// against an empty population or sample, or for a confidence outside
	// (0, 1).
	ErrDegenerateStatistics = errors.New("degenerate statistics")
	// ErrUnsupportedRepresentation is returned when the selected agree set
	// representation is not available.
	ErrUnsupportedRepresentation = errors.New("unsupported agree set representation")
	// ErrInvalidArgument is returned for missing collaborators or
	// inconsistent partition indices.
	ErrInvalidArgument = errors.New("invalid argument")
)
