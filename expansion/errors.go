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


package expansion

import "errors"

var (
	// ErrGraphRequired is returned when an engine is created without a concept graph.
	ErrGraphRequired = errors.New("concept graph required")

	// ErrIndexRequired is returned when an engine is created without a label index.
	ErrIndexRequired = errors.New("label index required")

	// ErrUnknownPolicy is returned for an unrecognized expansion policy name.
	ErrUnknownPolicy = errors.New("unknown expansion policy")

	// ErrUnknownKind is returned for an unrecognized token kind.
	ErrUnknownKind = errors.New("unknown token kind")

	// ErrInvalidDepth is returned for a negative depth or depth cap.
	ErrInvalidDepth = errors.New("invalid expansion depth")
)
