package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles seeds dir with name → content files.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// WaterTSV is a minimal coefficient table with a single component in the
// tab-separated layout, comma decimals included.
const WaterTSV = "Parameter\tWater\n" +
	"Formula\tH2O\n" +
	"MW\t18,015\n" +
	"Tc\t647,1\n" +
	"Pc\t22064\n" +
	"Vc\t0,0559\n" +
	"Zc\t0,229\n" +
	"omega\t0,345\n" +
	"Tb\t373,15\n" +
	"Tmin\t273,16\n" +
	"Tmax\t647,1\n" +
	"a\t66,7412\n" +
	"b\t-7258,2\n" +
	"c\t0\n" +
	"d\t-7,3037\n" +
	"e\t4,1653E-06\n" +
	"f\t2\n" +
	"units\tK/kPa\n"
