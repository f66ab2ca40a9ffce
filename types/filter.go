/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import "strings"

// QueryFilter describes a WHERE clause schema and its argument values.
// Placeholders in Schema are bun style ("?") and bind to Args in order.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// IsEmpty reports whether the filter carries no condition at all.
func (f *QueryFilter) IsEmpty() bool {
	return f == nil || strings.TrimSpace(f.Schema) == ""
}

// And folds the given filters into a single conjunction. Nil and empty
// filters are skipped rather than replaced by a tautology, so And() with
// nothing to fold returns nil.
func And(filters ...*QueryFilter) *QueryFilter {
	var (
		parts []string
		args  []interface{}
	)
	for _, f := range filters {
		if f.IsEmpty() {
			continue
		}
		parts = append(parts, f.Schema)
		args = append(args, f.Args...)
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return NewQueryFilter(parts[0], args...)
	}
	return NewQueryFilter("("+strings.Join(parts, ") AND (")+")", args...)
}
