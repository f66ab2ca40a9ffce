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

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type regParent struct{ ID int64 }
type regChild struct{ ID int64 }

func TestModelRegistryOrdersByPriority(t *testing.T) {
	r := newModelRegistry()
	r.Register(NewModelAdapter((*regChild)(nil), 20))
	r.Register(NewModelAdapter((*regParent)(nil), 10))
	r.Register(NewModelAdapter((*regChild)(nil), 1))

	models := r.Models()
	assert.Len(t, models, 2)
	assert.IsType(t, (*regParent)(nil), models[0].Instance())
	assert.IsType(t, (*regChild)(nil), models[1].Instance())
	assert.Equal(t, 20, models[1].Priority())
}
