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

package observe

import (
	"errors"
	"fmt"
)

// ErrEmptyAssignment is returned when classifying a PFA without literals.
var ErrEmptyAssignment = errors.New("empty assignment")

// InvalidAssignmentError is returned when a PFA mentions the same feature
// twice, with the same or with conflicting polarity. It is raised before any
// oracle query.
type InvalidAssignmentError struct {
	Assignment PFA
	Feature    Name
	// First and Second are the positions of the clashing literals.
	First  int
	Second int
}

// Error implements the error interface
func (e *InvalidAssignmentError) Error() string {
	kind := "repeats"
	if e.First < len(e.Assignment) && e.Second < len(e.Assignment) &&
		e.Assignment[e.First].Positive != e.Assignment[e.Second].Positive {
		kind = "assigns conflicting polarities to"
	}
	return fmt.Sprintf("invalid assignment [%s]: %s feature %s (positions %d and %d)",
		e.Assignment, kind, e.Feature.Value(), e.First, e.Second)
}

// UnknownFeatureError indicates that a PFA references a feature the oracle
// never declared.
type UnknownFeatureError struct {
	Feature Name
}

// Error implements the error interface.
func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("feature %s is not declared", e.Feature.Value())
}

// OracleError wraps a failure of the boolean-formula engine. It is fatal to
// the batch being classified; nothing is retried.
type OracleError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OracleError) Unwrap() error {
	return e.Err
}

// BatchError reports which PFA of a batch aborted classification.
type BatchError struct {
	Index      int
	Assignment PFA
	Err        error
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("classifying PFA %d [%s]: %v", e.Index, e.Assignment, e.Err)
}

// Unwrap returns the underlying error
func (e *BatchError) Unwrap() error {
	return e.Err
}

// ErrPartitionLimit is returned when a decomposition search exceeds the
// partition budget configured with WithMaxPartitions.
//
// Example:
//
//	classifier := NewClassifier(oracle, universe, WithMaxPartitions(1000))
//	_, err := classifier.Classify(pfa)
//	if limitErr, ok := err.(ErrPartitionLimit); ok {
//	    log.Printf("gave up after %d partitions", limitErr.Limit)
//	}
type ErrPartitionLimit struct {
	Limit int
}

// Error implements the error interface.
func (e ErrPartitionLimit) Error() string {
	if e.Limit <= 0 {
		return "decomposition exceeded partition limit"
	}
	return fmt.Sprintf("decomposition exceeded partition limit of %d", e.Limit)
}

var (
	_ error = (*InvalidAssignmentError)(nil)
	_ error = (*UnknownFeatureError)(nil)
	_ error = (*OracleError)(nil)
	_ error = (*BatchError)(nil)
	_ error = ErrPartitionLimit{}
)
