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


// Package analysis injects thesaurus expansions into token streams.
//
// Filter mirrors a search-engine synonym filter: every expansion term of a
// token is emitted as an additional token at the same position and with the
// same offsets, so phrase and proximity queries still line up.
//
// In label mode text is split into word tokens with Tokenize. In URI mode the
// whole field value is a single token, as produced by Keyword, and expansions
// replace opaque concept identifiers with searchable labels.
package analysis
