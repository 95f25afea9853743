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


package storage

import (
	"fmt"

	"github.com/poiesic/skosexpand/core"
)

// MarshalConcept serializes a Concept to bytes.
func MarshalConcept(concept *core.Concept) []byte {
	buf := make([]byte, core.ConceptMUS.Size(*concept))
	core.ConceptMUS.Marshal(*concept, buf)
	return buf
}

// UnmarshalConcept deserializes a Concept from bytes.
func UnmarshalConcept(data []byte) (*core.Concept, error) {
	concept, n, err := core.ConceptMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &concept, nil
}

// MarshalSnapshotMeta serializes snapshot metadata to bytes.
func MarshalSnapshotMeta(meta *core.SnapshotMeta) []byte {
	buf := make([]byte, core.SnapshotMetaMUS.Size(*meta))
	core.SnapshotMetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalSnapshotMeta deserializes snapshot metadata from bytes.
func UnmarshalSnapshotMeta(data []byte) (*core.SnapshotMeta, error) {
	meta, _, err := core.SnapshotMetaMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &meta, nil
}
