package include

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/verlang/eval"
	"github.com/akashmaji946/verlang/parser"
)

func TestInclude_ExactPath(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "greet.ver")
	require.NoError(t, os.WriteFile(libPath, []byte(`fn hello() => "hi"`), 0o644))

	withWD(t, dir, func() {
		ev := eval.New()
		Install(ev)
		var buf bytes.Buffer
		ev.SetWriter(&buf)

		prog := parser.New(`include "greet.ver" print(hello())`).ParseProgram()
		ev.Run(prog)
		assert.Equal(t, "hi\n", buf.String())
	})
}

func TestInclude_VerExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mathx.ver"), []byte(`let pi = 3`), 0o644))

	withWD(t, dir, func() {
		ev := eval.New()
		Install(ev)
		var buf bytes.Buffer
		ev.SetWriter(&buf)

		prog := parser.New(`include "mathx" print(pi)`).ParseProgram()
		ev.Run(prog)
		assert.Equal(t, "3\n", buf.String())
	})
}

func TestInclude_LibDirectoryFallback(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(libDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "util.ver"), []byte(`let answer = 42`), 0o644))

	withWD(t, dir, func() {
		ev := eval.New()
		Install(ev)
		var buf bytes.Buffer
		ev.SetWriter(&buf)

		prog := parser.New(`include "util" print(answer)`).ParseProgram()
		ev.Run(prog)
		assert.Equal(t, "42\n", buf.String())
	})
}

func TestInclude_MissingFileIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	withWD(t, dir, func() {
		ev := eval.New()
		Install(ev)
		var buf bytes.Buffer
		ev.SetWriter(&buf)

		prog := parser.New(`include "nope.ver" print("still running")`).ParseProgram()
		ev.Run(prog)
		assert.Equal(t, "still running\n", buf.String())
	})
}

func TestInclude_RunsInGlobalScopeRegardlessOfCaller(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pub.ver"), []byte(`let shared = 1`), 0o644))

	withWD(t, dir, func() {
		ev := eval.New()
		Install(ev)
		var buf bytes.Buffer
		ev.SetWriter(&buf)

		// the include happens inside a function body's scope, but the
		// binding it publishes must land in the global environment.
		prog := parser.New(`
fn loadIt()
  include "pub.ver"
end
loadIt()
print(shared)
`).ParseProgram()
		ev.Run(prog)
		assert.Equal(t, "1\n", buf.String())
	})
}

// withWD temporarily changes the process working directory so resolve's
// relative-path search finds files under dir, restoring it afterward.
func withWD(t *testing.T, dir string, fn func()) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(prev) }()
	fn()
}
