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


// Package skosexpand expands search terms with the synonyms and related
// concepts of a SKOS thesaurus.
//
// A Thesaurus is loaded once from a Turtle or N-Triples file:
//
//	th, err := skosexpand.NewThesaurus("thesaurus.ttl",
//		skosexpand.WithConfig(expansion.NewConfig(
//			expansion.WithPolicy(expansion.PolicyLabels|expansion.PolicyBroader),
//			expansion.WithDepth(1),
//		)),
//	)
//	if err != nil {
//		return err
//	}
//	defer th.Close()
//
//	result := th.Expand("arms") // weapons, military equipment
//
// Loading parses the source into a concept graph, repairs missing inverse
// relations, and indexes every preferred and alternative label. Results are
// memoized per request until the next Reload, which swaps graph and cache
// together. With WithSnapshotDir the parsed graph is stored in badger keyed by
// a fingerprint of the source, and unchanged sources load without parsing.
//
// Package analysis adapts a Thesaurus to token streams.
package skosexpand
