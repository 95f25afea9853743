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


// Package storage provides the storage abstraction layer for skosexpand.
//
// The expansion engine never needs storage: the thesaurus is parsed into memory on
// every start. This package exists so that a parsed concept graph can be persisted
// and reloaded for an unchanged source, skipping the parse.
//
// # Constructor Return Type Pattern
//
// Public constructors return concrete types from the backend package; consumers
// depend on the interfaces declared here:
//
//	var repo storage.SnapshotRepository = badger.NewSnapshotRepository(backend)
//
// # Architecture
//
//   - Repository: common lifecycle shared by all repositories
//   - SnapshotRepository: persisted copies of parsed thesauri keyed by source fingerprint
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	repo := badger.NewSnapshotRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemorySnapshotRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
