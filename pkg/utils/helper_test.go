package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, ClampLimit("", 5, 100))
	assert.Equal(t, 5, ClampLimit("abc", 5, 100))
	assert.Equal(t, 5, ClampLimit("0", 5, 100))
	assert.Equal(t, 5, ClampLimit("-3", 5, 100))
	assert.Equal(t, 12, ClampLimit("12", 5, 100))
	assert.Equal(t, 100, ClampLimit("1000", 5, 100))
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitOrigins(" http://a, ,http://b,"))
	assert.Nil(t, SplitOrigins(""))
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type body struct {
		Rating *int   `json:"rating" validate:"required,min=1,max=5"`
		Title  string `json:"title,omitempty" validate:"required"`
	}

	errs := ValidateStruct(body{Rating: IntToPointer(9)})

	assert.Equal(t, "Maximum is 5", errs["rating"])
	assert.Equal(t, "This field is required", errs["title"])
	assert.Nil(t, ValidateStruct(body{Rating: IntToPointer(3), Title: "x"}))
}
