//go:build windows

package goldie

import (
	"bytes"
	"testing"
)

// Assert normalizes line endings before comparing. Fixtures are never rewritten on windows.
func Assert(t *testing.T, name string, actual []byte, _ ...bool) {
	t.Helper()

	New(t).Assert(t, name, bytes.ReplaceAll(actual, []byte("\r\n"), []byte("\n")))
}

func Update(t *testing.T, _ string, _ []byte) {
	t.Helper()
	t.Fatalf("fixtures must not be updated on windows")
}
