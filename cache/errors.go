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


package cache

import "errors"

var (
	// ErrComputeRequired is returned when a cache is created without a compute function.
	ErrComputeRequired = errors.New("compute function required")

	// ErrInvalidCapacity is returned when bounded mode is configured without a positive capacity.
	ErrInvalidCapacity = errors.New("bounded cache requires a positive capacity")

	// ErrUnknownMode is returned for an unrecognized cache mode.
	ErrUnknownMode = errors.New("unknown cache mode")
)
