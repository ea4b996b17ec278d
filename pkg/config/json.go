// Copyright 2025 walteh LLC
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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser reads .json configs. Unknown fields and trailing content are rejected.
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

func (p *JSONParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// 📝 Parse decodes one JSON object. Errors carry the line and column of the offending token.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, jsonError(data, err)
	}
	if dec.More() {
		line, col := position(data, dec.InputOffset())
		return nil, errors.Errorf("parsing JSON: line %d, column %d: unexpected content after the config object", line, col)
	}
	return &cfg, nil
}

func jsonError(data []byte, err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line, col := position(data, syntax.Offset)
		return errors.Errorf("parsing JSON: line %d, column %d: %w", line, col, err)
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		line, col := position(data, typ.Offset)
		return errors.Errorf("parsing JSON: line %d, column %d: %s wants %s, got %s", line, col, typ.Field, typ.Type, typ.Value)
	}
	return errors.Errorf("parsing JSON: %w", err)
}

// position converts a byte offset into a 1-based line and column
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}
