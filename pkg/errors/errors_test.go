// Copyright (c) 2025, Unitscope Authors.  All rights reserved.
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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeIdentity, "cannot resolve current user"),
			want: "[IDENTITY] cannot resolve current user",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeUnavailable, "systemctl not usable", errors.New("exec: not found")),
			want: "[UNAVAILABLE] systemctl not usable: exec: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCodeTimeout, "command timed out", cause)

	assert.True(t, errors.Is(err, cause))

	var se *StructuredError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, ErrCodeTimeout, se.Code)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeIdentity, CodeOf(New(ErrCodeIdentity, "nope")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrCodeTimeout, CodeOf(fmt.Errorf("capture: %w", New(ErrCodeTimeout, "late"))))
}

func TestWrapWithContext(t *testing.T) {
	err := WrapWithContext(ErrCodeTimeout, "slow", nil, map[string]any{"command": "systemctl"})
	assert.Equal(t, "systemctl", err.Context["command"])
}
