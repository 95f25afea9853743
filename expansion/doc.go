// Copyright 2025 Poiesic Systems
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


// Package expansion turns a token into the thesaurus terms related to it.
//
// # Algorithm
//
// An expansion runs in three steps:
//
//  1. Seed resolution. A URI token seeds the concept with that URI; a label
//     token seeds every concept carrying the label, preferred or alternative.
//  2. Traversal. With PolicyLabels (or at depth 0) the seeds' own labels are
//     collected, minus the token itself. The graph is then walked
//     breadth-first up to the request depth, each hop following every
//     relation in the policy, collecting the preferred labels of every
//     concept reached. A single visited set per call stops the walk from
//     entering any concept twice.
//  3. Aggregation. Terms are de-duplicated on their normalized form and keep
//     the spelling first seen.
//
// Seeds are processed in URI order and neighbors are visited in URI order,
// so results are deterministic for a given graph.
//
// # Usage
//
//	engine, err := expansion.NewEngine(g, idx, expansion.WithMaxDepth(2))
//	result := engine.Expand(expansion.Request{
//		Token:  "spearhead",
//		Kind:   expansion.KindLabel,
//		Policy: expansion.PolicyBroader,
//		Depth:  2,
//	})
//	// result.Terms == []string{"weapons", "military equipment"}
package expansion
