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

import "fmt"

// CursorRequest asks for the batch following the last seen identifier.
// A nil LastID starts from the newest row.
type CursorRequest struct {
	LastID   *int64
	PageSize int
}

// NewCursorRequest constructs a cursor request.
func NewCursorRequest(lastID *int64, pageSize int) *CursorRequest {
	return &CursorRequest{LastID: lastID, PageSize: pageSize}
}

// Validate rejects sizes outside [1, MaxPageSize] and non-positive cursors.
func (c *CursorRequest) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: missing cursor request", ErrInvalidPageRequest)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: size must be between 1 and %d, got %d", ErrInvalidPageRequest, MaxPageSize, c.PageSize)
	}
	if c.LastID != nil && *c.LastID < 1 {
		return fmt.Errorf("%w: cursor must be > 0, got %d", ErrInvalidPageRequest, *c.LastID)
	}
	return nil
}

// FetchSize is the number of rows to read: one more than the page size so
// the presence of a following batch can be detected.
func (c *CursorRequest) FetchSize() int { return c.PageSize + 1 }

// Slice is a page that knows whether more rows follow but not how many.
type Slice[T any] struct {
	Content          []T  `json:"content"`
	Size             int  `json:"size"`
	NumberOfElements int  `json:"numberOfElements"`
	HasNext          bool `json:"hasNext"`
	IsLast           bool `json:"isLast"`
}

// SliceOf trims a fetch of up to pageSize+1 rows down to pageSize and flags
// hasNext when the extra row was present.
func SliceOf[T any](fetched []T, pageSize int) *Slice[T] {
	hasNext := false
	if len(fetched) > pageSize {
		hasNext = true
		fetched = fetched[:pageSize]
	}
	if fetched == nil {
		fetched = make([]T, 0)
	}
	return &Slice[T]{
		Content:          fetched,
		Size:             pageSize,
		NumberOfElements: len(fetched),
		HasNext:          hasNext,
		IsLast:           !hasNext,
	}
}
