package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello World", CleanString("  Hello World \t"))
	assert.Equal(t, "hello", CleanString(" HeLLo ", true))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{}},
		{in: "Maths", want: []string{"Maths"}},
		{in: "Maths, Physics ,Chemistry", want: []string{"Maths", "Physics", "Chemistry"}},
		{in: "Maths;Physics", want: []string{"Maths", "Physics"}},
		{in: " , ;Maths,, ", want: []string{"Maths"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitList(tt.in), "SplitList(%q)", tt.in)
	}
}

func TestOptions(t *testing.T) {
	opt := NewOption("T-001", "Ann Lee")
	assert.Equal(t, "T-001 — Ann Lee", opt.Label)
	assert.Equal(t, "T-001", opt.Value)

	assert.Equal(t, "T-001", ParseOption(opt.Label))
	assert.Equal(t, "S-002", ParseOption("S-002"))
	assert.Equal(t, "S-002", ParseOption(" S-002 "))
	assert.Equal(t, "", ParseOption(""))
}
