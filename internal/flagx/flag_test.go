package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "localhost:3000", "-x", "ignored"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:3000"},
		},
		{
			name:    "equals form",
			args:    []string{"--addr=localhost:3000", "--other=1"},
			allowed: []string{"--addr"},
			want:    []string{"--addr=localhost:3000"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-v", "-a", "x"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", "x"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
