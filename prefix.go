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

package instruktlog

import "strings"

// PrefixSet is a set of dotted logger-name prefixes used as classification
// and muting filters. The empty set is valid and covers nothing. Insertion
// order is irrelevant; matching is case-sensitive with no wildcards.
type PrefixSet []string

// ParsePrefixSet splits a comma-separated prefix list into a PrefixSet,
// trimming whitespace and dropping empty items. An empty or all-whitespace
// input yields a nil set, the "no override" state.
func ParsePrefixSet(csv string) PrefixSet {
	var set PrefixSet
	for _, item := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			set = append(set, trimmed)
		}
	}
	return set
}

// Covers reports whether name is covered by any prefix in the set: an exact
// match, or a strict dotted sub-namespace (name starts with prefix + ".").
// Partial segments never match; "htt" does not cover "httpcore".
func (s PrefixSet) Covers(name string) bool {
	for _, p := range s {
		if coveredBy(p, name) {
			return true
		}
	}
	return false
}

// coveredBy reports whether name equals prefix or sits below it in the
// dotted namespace hierarchy.
func coveredBy(prefix, name string) bool {
	return name == prefix || strings.HasPrefix(name, prefix+".")
}

// Class is the derived classification of a logger name. It is recomputed
// from the application root namespace rather than stored.
type Class int

const (
	// ClassApplication marks loggers inside the service's own namespace.
	ClassApplication Class = iota
	// ClassThirdParty marks every other logger.
	ClassThirdParty
)

// String returns "application" or "third-party".
func (c Class) String() string {
	if c == ClassApplication {
		return "application"
	}
	return "third-party"
}

// Classify determines whether a logger name belongs to the application
// rooted at appRoot. The decision is a pure string computation over the
// dotted namespace: the name is application if and only if appRoot covers it
// as a singleton prefix set. Classification is total; every name is exactly
// one of the two classes.
func Classify(appRoot, name string) Class {
	if coveredBy(appRoot, name) {
		return ClassApplication
	}
	return ClassThirdParty
}
