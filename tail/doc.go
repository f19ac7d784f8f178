// Copyright 2026 The InstruktAI Authors
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

// Package tail reads bounded windows from InstruktAI log files. It
// understands the canonical timestamp prefix written by the instruktlog
// handler, so it can time-slice a file (including rotated siblings left by
// external rotation tools) and follow live appends in the manner of tail -f,
// detecting rotation and truncation as it goes.
//
// The package only ever reads; writing, rotation, and deletion belong to the
// emitting service and its rotation tooling.
package tail
