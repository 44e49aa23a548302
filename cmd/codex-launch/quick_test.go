package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input  string
		n      int
		want   int
		wantOK bool
	}{
		{"", 5, 0, true},
		{"\n", 5, 0, true},
		{"1\n", 5, 0, true},
		{"3\n", 5, 2, true},
		{"5", 5, 4, true},
		{"6", 5, 0, false},
		{"0", 5, 0, false},
		{"-1", 5, 0, false},
		{"abc", 5, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.input, tt.n)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}
