package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)

	// first message for a field wins
	v.Check(false, "title", "another message")
	assert.Equal(t, "must be provided", v.Errors["title"])

	err := v.ValidationError()
	assert.Equal(t, ValidationError{Errors: v.Errors}, err)
}

func TestCheckNotBlank(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "plain text", input: "tech", expected: true},
		{name: "padded text", input: "  tech  ", expected: true},
		{name: "empty", input: "", expected: false},
		{name: "spaces", input: "   ", expected: false},
		{name: "tabs and newlines", input: "\t\n ", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, v.CheckNotBlank(tc.input))
		})
	}
}
