package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoginScenario is a two participant scenario with one call and its return.
const LoginScenario = `
name: login
participants:
  - {name: user, type: Actor}
  - {name: server, type: Server}
messages:
  - {from: user, to: server, text: login()}
  - {kind: return}
`

// WriteScenario writes doc to a file named name inside a temporary directory and returns
// its absolute path. It fails the test immediately on error.
func WriteScenario(t *testing.T, name, doc string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	path := filepath.Join(absPath, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644), "Failed to write scenario")
	return path
}
