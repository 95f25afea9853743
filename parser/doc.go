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


// Package parser reads SKOS thesauri written as Turtle or N-Triples.
//
// The parser understands the statement subset a thesaurus needs: prefix and
// base directives, IRIs, prefixed names, the "a" keyword, string literals with
// language tags, and predicate and object lists. Only the SKOS labelling and
// semantic relation predicates are emitted; everything else is dropped.
//
// Parsing is lenient. A statement that cannot be parsed is skipped as a whole
// and reported as a *core.ParseError; parsing resumes at the next statement.
//
//	p, _ := parser.New(parser.WithLogger(logger))
//	stream := p.Parse(file)
//	for t := range stream.Triples() {
//		...
//	}
//	if err := stream.Err(); err != nil {
//		// core.ErrSourceUnavailable
//	}
package parser
