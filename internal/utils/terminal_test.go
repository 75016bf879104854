//go:build !integration

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTerminalWidth(t *testing.T) {
	t.Run("uses COLUMNS when valid", func(t *testing.T) {
		t.Setenv("COLUMNS", "120")
		assert.Equal(t, 120, GetTerminalWidth())
	})

	for _, value := range []string{"invalid", "0", "-1"} {
		t.Run("ignores COLUMNS="+value, func(t *testing.T) {
			t.Setenv("COLUMNS", value)
			assert.Positive(t, GetTerminalWidth())
		})
	}
}

func TestIsInteractiveTerminal(t *testing.T) {
	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.False(t, IsInteractiveTerminal(f))
	})

	t.Run("pipe is not a terminal", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer func() {
			_ = r.Close()
			_ = w.Close()
		}()

		assert.False(t, IsInteractiveTerminal(w))
	})

	t.Run("nil file is not a terminal", func(t *testing.T) {
		assert.False(t, IsInteractiveTerminal(nil))
	})
}
