package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("READYCHECK_TEST_DIR", "/tmp/readycheck")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain path untouched", in: "/var/lib/app.db", want: "/var/lib/app.db"},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/data/app.db", want: filepath.Join(home, "data/app.db")},
		{name: "env var", in: "$READYCHECK_TEST_DIR/app.db", want: "/tmp/readycheck/app.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
