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
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/afdiscovery/agreeset-go/vertical"
)

// Restriction is a vertical together with its partition index.
type Restriction struct {
	Vertical vertical.Vertical
	PLI      PartitionIndex
}

// NewFocusedSamples builds one focused sample per restriction, in parallel.
// Each restriction draws from DeriveRandomSource(seed, restriction.Vertical),
// so the result does not depend on scheduling and equals building the
// samples one by one with those sources. samples[i] belongs to
// restrictions[i].
func NewFocusedSamples(ctx context.Context, rel Relation, restrictions []Restriction, sampleSize int, seed int64, opts ...Option) ([]*AgreeSetSample, error) {
	cfg := newConfig(opts)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.parallelism)

	samples := make([]*AgreeSetSample, len(restrictions))
	for i, r := range restrictions {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := NewFocusedSample(rel, r.Vertical, r.PLI, sampleSize, DeriveRandomSource(seed, r.Vertical), opts...)
			if err != nil {
				return errors.Wrapf(err, "restriction %s", r.Vertical)
			}
			samples[i] = sample
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cfg.logger.WithField("samples", len(samples)).Debug("focused samples created")
	return samples, nil
}
