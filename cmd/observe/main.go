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

// Command observe classifies partial feature assignments of product lines
// as directly observable, indirectly observable or unobservable.
//
// The CLI supports:
//   - run: classify the t-wise PFAs of feature model experiments
//   - check: report experiments whose model files are missing
//   - pim: classify the terms of measured performance-influence models
//   - classify: classify chosen PFAs against one feature model
//   - history: list checkpointed runs and their tier statistics
//
// Usage:
//
//	observe [flags] <command>
package main

func main() {
	Execute()
}
