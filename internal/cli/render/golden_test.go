package render

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// assertGolden compares output with testdata/golden/<name>, rewriting it under -update
func assertGolden(t *testing.T, name string, output []byte) {
	t.Helper()
	path := filepath.Join("testdata", "golden", name)

	if *updateGolden {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, output, 0644))
		return
	}

	expected, err := os.ReadFile(path)
	require.NoError(t, err, "golden file %s missing, run with -update", path)

	if diff := cmp.Diff(string(expected), string(output)); diff != "" {
		t.Errorf("output mismatch for %s (-want +got):\n%s", name, diff)
	}
}
