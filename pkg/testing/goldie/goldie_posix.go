//go:build !windows

package goldie

import (
	"testing"
)

// Assert compares actual with fixtures/<name>.golden. Passing true rewrites the fixture first,
// which is handy while iterating on a single test without the global -update flag.
func Assert(t *testing.T, name string, actual []byte, update ...bool) {
	t.Helper()

	g := New(t)
	if len(update) > 0 && update[0] {
		if err := g.Update(t, name, actual); err != nil {
			t.Fatalf("updating fixture %s: %v", name, err)
		}
	}
	g.Assert(t, name, actual)
}

func Update(t *testing.T, name string, actual []byte) {
	t.Helper()

	if err := New(t).Update(t, name, actual); err != nil {
		t.Fatalf("updating fixture %s: %v", name, err)
	}
}
