package ast

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"WithFilename", Position{Filename: "ledger.dat", Line: 12}, "ledger.dat:12"},
		{"WithoutFilename", Position{Line: 3}, "line 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pos.String())
		})
	}
}

func TestPositionGoString(t *testing.T) {
	pos := Position{Filename: "ledger.dat", Line: 4}
	assert.Equal(t, `Position{Filename: "ledger.dat", Line: 4}`, fmt.Sprintf("%#v", pos))
}
