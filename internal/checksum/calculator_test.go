package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256_Sum(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.Sum([]byte(tt.content)))
		})
	}
}

func TestSHA256_Sum_WhitespaceMatters(t *testing.T) {
	calc := New()
	assert.NotEqual(t,
		calc.Sum([]byte("CREATE TABLE t(x);")),
		calc.Sum([]byte("CREATE TABLE t(x); ")),
	)
}
