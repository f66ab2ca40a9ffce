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
	"errors"
	"fmt"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// ErrInvalidPageRequest is returned when page or size are out of range.
var ErrInvalidPageRequest = errors.New("invalid page request")

// PageRequest describes a zero-based offset page, an optional filter and
// ordering.
type PageRequest struct {
	page     int
	pageSize int
	filter   *QueryFilter
	sorts    []Sort
}

// NewPageRequest constructs a PageRequest with filter and order settings.
func NewPageRequest(page int, pageSize int, filter *QueryFilter, sorts []Sort) *PageRequest {
	return &PageRequest{page, pageSize, filter, sorts}
}

// NewPageRequestWithFilter constructs a PageRequest with a filter only.
func NewPageRequestWithFilter(page int, pageSize int, filter *QueryFilter) *PageRequest {
	return NewPageRequest(page, pageSize, filter, nil)
}

// NewPageRequestWithSort constructs a PageRequest with ordering only.
func NewPageRequestWithSort(page int, pageSize int, sorts ...Sort) *PageRequest {
	return NewPageRequest(page, pageSize, nil, sorts)
}

// NewDefaultPageRequest constructs a PageRequest with no filter or ordering.
func NewDefaultPageRequest(page int, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, nil, nil)
}

// Validate rejects negative pages and sizes outside [1, MaxPageSize].
func (p *PageRequest) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: missing page request", ErrInvalidPageRequest)
	}
	if p.page < 0 {
		return fmt.Errorf("%w: page must be >= 0, got %d", ErrInvalidPageRequest, p.page)
	}
	if p.pageSize < 1 || p.pageSize > MaxPageSize {
		return fmt.Errorf("%w: size must be between 1 and %d, got %d", ErrInvalidPageRequest, MaxPageSize, p.pageSize)
	}
	return nil
}

func (p *PageRequest) GetPage() int { return p.page }

func (p *PageRequest) GetPageSize() int { return p.pageSize }

func (p *PageRequest) GetOffset() int {
	return p.page * p.pageSize
}

func (p *PageRequest) GetFilter() *QueryFilter { return p.filter }

func (p *PageRequest) GetSorts() []Sort { return p.sorts }

// GetOrders returns the ordering rendered for bun, e.g. "m.age DESC".
func (p *PageRequest) GetOrders() []string { return Orders(p.sorts...) }

// Page holds an offset page of results with its totals.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	HasNext          bool  `json:"hasNext"`
	HasPrevious      bool  `json:"hasPrevious"`
}

// NewPage derives the page metadata from content, request and total.
func NewPage[T any](content []T, req *PageRequest, total int64) *Page[T] {
	if content == nil {
		content = make([]T, 0)
	}
	size := req.GetPageSize()
	totalPages := 1
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Content:          content,
		Number:           req.GetPage(),
		Size:             size,
		NumberOfElements: len(content),
		TotalElements:    total,
		TotalPages:       totalPages,
		First:            req.GetPage() == 0,
		Last:             req.GetPage()+1 >= totalPages,
		HasNext:          req.GetPage()+1 < totalPages,
		HasPrevious:      req.GetPage() > 0,
	}
}

// PageOf builds a page, calling count only when the total cannot be inferred
// from the content: a first page shorter than the page size holds every row,
// and a non-empty page shorter than the page size is the last one.
func PageOf[T any](content []T, req *PageRequest, count func() (int64, error)) (*Page[T], error) {
	size := req.GetPageSize()
	offset := int64(req.GetOffset())
	n := len(content)
	if offset == 0 && n < size {
		return NewPage(content, req, int64(n)), nil
	}
	if n != 0 && n < size {
		return NewPage(content, req, offset+int64(n)), nil
	}
	total, err := count()
	if err != nil {
		return nil, err
	}
	return NewPage(content, req, total), nil
}
