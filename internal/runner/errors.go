// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
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

package runner

import (
	"fmt"
)

// ModelError reports a feature model or dataset that could not be loaded.
type ModelError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *ModelError) Error() string {
	return fmt.Sprintf("loading model %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error
func (e *ModelError) Unwrap() error {
	return e.Err
}

// StoreError reports a failed checkpoint write.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

var (
	_ error = (*ModelError)(nil)
	_ error = (*StoreError)(nil)
)
