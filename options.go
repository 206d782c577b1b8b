// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package linear

import "go.uber.org/zap"

// config holds the construction parameters shared by every container.
type config[K comparable] struct {
	hasher     Hasher[K]
	loadFactor float64
	logger     *zap.Logger
}

func makeConfig[K comparable](options []option[K]) config[K] {
	cfg := config[K]{
		loadFactor: defaultLoadFactor,
	}
	for _, op := range options {
		op.apply(&cfg)
	}
	if cfg.hasher == nil {
		cfg.hasher = NewRuntimeHasher[K]()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// option provide an interface to do work on a container while it is being
// created.
type option[K comparable] interface {
	apply(cfg *config[K])
}

type hasherOption[K comparable] struct {
	hasher Hasher[K]
}

func (op hasherOption[K]) apply(cfg *config[K]) {
	cfg.hasher = op.hasher
}

// WithHasher is an option to specify the Hasher used to place and compare
// keys.
func WithHasher[K comparable](hasher Hasher[K]) option[K] {
	return hasherOption[K]{hasher}
}

// WithHash is an option to specify the hash function to use for keys of type
// K. Keys are compared with ==.
func WithHash[K comparable](hash func(key K) uint64) option[K] {
	return hasherOption[K]{HashFunc[K](hash)}
}

type loadFactorOption[K comparable] struct {
	loadFactor float64
}

func (op loadFactorOption[K]) apply(cfg *config[K]) {
	cfg.loadFactor = op.loadFactor
}

// WithLoadFactor is an option to specify the fraction of slots, in (0, 1],
// that may be occupied before the table grows. The default is 0.7.
func WithLoadFactor[K comparable](loadFactor float64) option[K] {
	return loadFactorOption[K]{loadFactor}
}

type loggerOption[K comparable] struct {
	logger *zap.Logger
}

func (op loggerOption[K]) apply(cfg *config[K]) {
	cfg.logger = op.logger
}

// WithLogger is an option to specify a logger receiving debug events about
// table growth and reallocation.
func WithLogger[K comparable](logger *zap.Logger) option[K] {
	return loggerOption[K]{logger}
}
