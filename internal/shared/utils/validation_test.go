package utils

import (
	stderrors "errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/shared/errors"
)

type sample struct {
	Title    string   `json:"title" validate:"required,max=5"`
	Priority int      `json:"priority" validate:"gte=1,lte=5"`
	Kind     string   `validate:"omitempty,oneof=bug task"`
	Pair     []string `json:"pair" validate:"omitempty,len=2"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantMsg string
	}{
		{name: "valid", input: sample{Title: "ok", Priority: 3}},
		{name: "missing title", input: sample{Priority: 3}, wantMsg: "title is required"},
		{name: "title too long", input: sample{Title: "toolong", Priority: 3}, wantMsg: "title must be at most 5 characters long"},
		{name: "priority out of range", input: sample{Title: "ok", Priority: 9}, wantMsg: "priority must be less than or equal to 5"},
		{name: "wrong item count", input: sample{Title: "ok", Priority: 1, Pair: []string{"a"}}, wantMsg: "pair must contain exactly 2 items"},
		{name: "untagged field uses go name", input: sample{Title: "ok", Priority: 1, Kind: "x"}, wantMsg: "Kind must be one of [bug task]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Equal(t, tt.wantMsg, errors.GetAppError(err).Message)
		})
	}
}

func TestBindingError(t *testing.T) {
	type request struct {
		Comment string `json:"comment" binding:"required"`
	}
	RegisterBindingTagNames()

	err := binding.Validator.ValidateStruct(&request{})
	require.Error(t, err)

	converted := BindingError(err)
	assert.True(t, errors.IsValidationError(converted))
	assert.Equal(t, "comment is required", errors.GetAppError(converted).Message)

	plain := BindingError(stderrors.New("unexpected EOF"))
	assert.True(t, errors.IsValidationError(plain))
	assert.Equal(t, "invalid request body", errors.GetAppError(plain).Message)
}
