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


package skosexpand

import "errors"

var (
	// ErrSourceRequired is returned when a thesaurus is created without a source path.
	ErrSourceRequired = errors.New("thesaurus source required")

	// ErrNoSource is returned by Reload on a thesaurus loaded from a reader.
	ErrNoSource = errors.New("thesaurus has no reloadable source")

	// ErrClosed is returned when a closed thesaurus is used.
	ErrClosed = errors.New("thesaurus is closed")

	// ErrConflictingSnapshotOptions is returned when both a snapshot directory
	// and a snapshot repository are configured.
	ErrConflictingSnapshotOptions = errors.New("snapshot directory and repository are mutually exclusive")
)
