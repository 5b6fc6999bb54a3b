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
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultSampleSize is the number of tuple pairs drawn per sample when a
	// caller has no better figure.
	DefaultSampleSize = 10000
	// DefaultStdDevSmoothing is added to p̂(1−p̂) before taking the standard
	// error, so intervals never collapse while sampling is incomplete.
	DefaultStdDevSmoothing = 1e-4
	// DefaultConfidence is the confidence level used by search code that does
	// not configure one.
	DefaultConfidence = 0.95
)

// Option configures sample construction and estimation.
type Option func(*config)

type config struct {
	representation  Representation
	intervalMethod  IntervalMethod
	stdDevSmoothing float64
	parallelism     int
	logger          logrus.FieldLogger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		representation:  ListRepresentation,
		intervalMethod:  NormalApproximationMethod,
		stdDevSmoothing: DefaultStdDevSmoothing,
		parallelism:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		cfg.logger = logger
	}
	if cfg.parallelism < 1 {
		cfg.parallelism = 1
	}
	return cfg
}

// WithRepresentation selects the agree set representation.
func WithRepresentation(r Representation) Option {
	return func(c *config) {
		c.representation = r
	}
}

// WithIntervalMethod selects how confidence intervals are computed.
func WithIntervalMethod(m IntervalMethod) Option {
	return func(c *config) {
		c.intervalMethod = m
	}
}

// WithStdDevSmoothing overrides DefaultStdDevSmoothing. Negative values are
// treated as zero.
func WithStdDevSmoothing(s float64) Option {
	return func(c *config) {
		c.stdDevSmoothing = max(s, 0)
	}
}

// WithParallelism bounds the number of samples NewFocusedSamples builds at
// once.
func WithParallelism(n int) Option {
	return func(c *config) {
		c.parallelism = n
	}
}

// WithLogger sets the logger used during construction. Without it nothing is
// logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
