package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	require.NoError(t, os.Chdir(dir))
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("results_dir: out"), 0o644))

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/observe.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	configPath := filepath.Join(root, "observe.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("results_dir: out"), 0o644))

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := findConfigFile("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtGitRoot(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, "observe.yaml"), []byte("results_dir: out"), 0o644))

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	chdir(t, repo)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Equal(t, "examples", cfg.ExperimentsDir)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Equal(t, []int{1, 2, 3}, cfg.Tiers)
	assert.Len(t, cfg.Experiments, 15)
	assert.Equal(t, ";", cfg.PIM.Delimiter)
	assert.Equal(t, BDDConfig{NodeSize: 10000, CacheSize: 3000}, cfg.BDD)
	assert.Equal(t, []string{"revision", "error"}, cfg.PIM.ModelExclude)
	require.Len(t, cfg.PIM.Examples, 11)

	ex, ok := cfg.PIMExample("HSQLDB")
	require.True(t, ok)
	assert.Contains(t, ex.Exclude, "fixed-power")
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "observe.yaml")
	content := `experiments_dir: models
tiers: [1, 2]
store:
  path: runs.db
pim:
  examples:
    - name: Toy
      exclude: [revision]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("OBSERVE_RESULTS_DIR", "env-results")
	t.Setenv("OBSERVE_BDD_NODE_SIZE", "50000")

	cfg, got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "models", cfg.ExperimentsDir)
	assert.Equal(t, "env-results", cfg.ResultsDir)
	assert.Equal(t, []int{1, 2}, cfg.Tiers)
	assert.Equal(t, "runs.db", cfg.Store.Path)
	assert.Equal(t, 50000, cfg.BDD.NodeSize)
	assert.Equal(t, 3000, cfg.BDD.CacheSize)
	require.Len(t, cfg.PIM.Examples, 1)
	assert.Equal(t, "Toy", cfg.PIM.Examples[0].Name)
	assert.Equal(t, filepath.Join("models", "a", "b"), cfg.ExperimentPath("a/b"))
}

func TestLoadConfig_InvalidTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers: [1, 0]\n"), 0o644))

	_, _, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arity must be positive")
}

func TestLoadConfig_Delimiter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "observe.yaml")

	require.NoError(t, os.WriteFile(path, []byte("pim:\n  delimiter: '\\t'\n"), 0o644))
	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, `\t`, cfg.PIM.Delimiter)

	require.NoError(t, os.WriteFile(path, []byte("pim:\n  delimiter: ';;'\n"), 0o644))
	_, _, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single character")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitConfig, ExitCode(ConfigError("loading", os.ErrNotExist)))
	assert.Equal(t, ExitModelParse, ExitCode(ModelParseError("parsing", nil)))
	assert.Equal(t, ExitStore, ExitCode(StoreError("opening", nil)))
	assert.Equal(t, ExitGeneral, ExitCode(os.ErrClosed))

	err := ConfigError("loading", os.ErrNotExist)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "loading: file does not exist", err.Error())
}
