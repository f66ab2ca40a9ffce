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

package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsRegisteredOnce(t *testing.T) {
	a := NewLogger("UTIL_TEST")
	b := NewLogger("UTIL_TEST")
	assert.Same(t, a, b)

	assert.True(t, SetLoggerLevel("UTIL_TEST", "error"))
	assert.Equal(t, logrus.ErrorLevel, a.GetLevel())
	assert.False(t, SetLoggerLevel("NOPE", "error"))
}

func TestLog4jFormatter(t *testing.T) {
	var buf bytes.Buffer
	ConfigureOutput(&buf)
	defer ConfigureOutput(os.Stdout)

	lg := NewLogger("FMT_TEST")
	lg.SetLevel(logrus.InfoLevel)
	lg.WithField("rows", 3).Info("search done")

	line := buf.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "[  FMT_TEST]")
	assert.Contains(t, line, "search done rows=3")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "JSON_TEST"}
	entry := logrus.NewEntry(logrus.New()).WithField("err", assert.AnError)
	entry.Message = "boom"
	entry.Level = logrus.ErrorLevel

	b, err := f.Format(entry)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "boom", out["msg"])
	assert.Equal(t, "error", out["level"])
	assert.Equal(t, "JSON_TEST", out["logger"])
	assert.Equal(t, assert.AnError.Error(), out["err"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel(" Warning "))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("bogus"))
}
