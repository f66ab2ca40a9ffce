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

import (
	"fmt"
	"strings"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Direction is the sort direction of an ORDER BY term.
type Direction int

const (
	Asc Direction = iota
	Desc
)

var _ BaseEnum = Direction(0)

// ParseDirection accepts "asc"/"desc" in any case; blank means Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Direction(IllegalValue), fmt.Errorf("unknown sort direction %q", s)
}

func (d Direction) IsValid() bool { return d == Asc || d == Desc }

func (d Direction) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

func (d Direction) Name() string {
	switch d {
	case Asc:
		return "ASC"
	case Desc:
		return "DESC"
	}
	return IllegalName
}

func (d Direction) String() string { return d.Name() }

func (d Direction) Desc() string {
	switch d {
	case Asc:
		return "ascending"
	case Desc:
		return "descending"
	}
	return IllegalDesc
}

// Sort is a single ORDER BY term over a column expression.
type Sort struct {
	Column    string
	Direction Direction
}

// By builds an ascending sort on column.
func By(column string) Sort { return Sort{Column: column, Direction: Asc} }

// ByDesc builds a descending sort on column.
func ByDesc(column string) Sort { return Sort{Column: column, Direction: Desc} }

// String renders the term the way bun's Order expects it ("m.age DESC").
func (s Sort) String() string {
	return s.Column + " " + s.Direction.Name()
}

// Orders renders a list of sorts for bun's Order.
func Orders(sorts ...Sort) []string {
	out := make([]string, 0, len(sorts))
	for _, s := range sorts {
		out = append(out, s.String())
	}
	return out
}
