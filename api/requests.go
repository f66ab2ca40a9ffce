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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/types"
)

type pageQuery struct {
	Page int      `form:"page" binding:"min=0"`
	Size int      `form:"size,default=20" binding:"min=1,max=2000"`
	Sort []string `form:"sort"`
}

type cursorQuery struct {
	LastMemberID *int64 `form:"lastMemberId" binding:"omitempty,min=1"`
	Size         int    `form:"size,default=20" binding:"min=1,max=2000"`
}

// bindQuery binds the query string into dst, keeping validator errors
// intact and marking everything else as a bad request. Blank parameters
// count as absent, so "?ageLoe=" leaves the bound pointer nil.
func bindQuery(c *gin.Context, dst any) error {
	if err := binding.MapFormWithTag(dst, presentParams(c.Request.URL.Query()), "form"); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return verrs
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// presentParams drops blank values and the keys left without any.
func presentParams(query url.Values) url.Values {
	out := make(url.Values, len(query))
	for key, values := range query {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				out[key] = append(out[key], v)
			}
		}
	}
	return out
}

// parseSorts turns "field" or "field,dir" values into sorts over the
// member columns.
func parseSorts(values []string) ([]types.Sort, error) {
	sorts := make([]types.Sort, 0, len(values))
	for _, v := range values {
		field, dir, _ := strings.Cut(v, ",")
		col, ok := repository.SortColumn(strings.TrimSpace(field))
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort field %q", types.ErrInvalidPageRequest, field)
		}
		d, err := types.ParseDirection(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidPageRequest, err)
		}
		sorts = append(sorts, types.Sort{Column: col, Direction: d})
	}
	return sorts, nil
}
