package execution

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, goos string) string {
	t.Helper()
	dir := t.TempDir()
	bundle := filepath.Join(dir, ".build", "debug", "MyPackageTests.xctest")

	if goos == "darwin" {
		executable := filepath.Join(bundle, "Contents", "MacOS", "MyPackageTests")
		require.NoError(t, os.MkdirAll(filepath.Dir(executable), 0o755))
		require.NoError(t, os.WriteFile(executable, nil, 0o755))
	} else {
		require.NoError(t, os.MkdirAll(filepath.Dir(bundle), 0o755))
		require.NoError(t, os.WriteFile(bundle, nil, 0o755))
	}
	return dir
}

func TestNewLaunchConfig_DarwinFilter(t *testing.T) {
	dir := writeBundle(t, "darwin")

	cfg, err := NewLaunchConfig("darwin", dir, []string{"MyTests/FooTests", "MyTests/BarTests/testOne"}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"-XCTest", "MyTests/FooTests,MyTests/BarTests/testOne"}, cfg.Args)
	assert.False(t, cfg.SplitStdout, "a plain darwin run parses the live stream")
	assert.Contains(t, cfg.Program, filepath.Join("Contents", "MacOS", "MyPackageTests"))
}

func TestNewLaunchConfig_DarwinDebugBuffersOutput(t *testing.T) {
	dir := writeBundle(t, "darwin")

	cfg, err := NewLaunchConfig("darwin", dir, nil, true)
	require.NoError(t, err)
	defer os.Remove(cfg.OutputPath)

	assert.Empty(t, cfg.Args)
	assert.True(t, cfg.SplitStdout)
	assert.NotEmpty(t, cfg.OutputPath)
}

func TestNewLaunchConfig_LinuxAlwaysSplits(t *testing.T) {
	dir := writeBundle(t, "linux")

	cfg, err := NewLaunchConfig("linux", dir, []string{"FooTests/testBar"}, false)
	require.NoError(t, err)
	defer os.Remove(cfg.OutputPath)

	assert.Equal(t, []string{"FooTests/testBar"}, cfg.Args)
	assert.True(t, cfg.SplitStdout)
	assert.NotEmpty(t, cfg.OutputPath)
}

func TestNewLaunchConfig_NoBundle(t *testing.T) {
	_, err := NewLaunchConfig("linux", t.TempDir(), nil, false)
	assert.Error(t, err)
}

func TestOutputBudget_CapsCombinedStreams(t *testing.T) {
	budget := newOutputBudget(8)
	var a, b bytes.Buffer

	wa := budget.wrap(&a)
	wb := budget.wrap(&b)

	n, err := wa.Write([]byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = wb.Write([]byte("67890"))
	require.NoError(t, err)
	assert.Equal(t, 5, n, "writes past the cap still succeed")

	assert.Equal(t, "12345", a.String())
	assert.Equal(t, "678", b.String())

	n, err = wa.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "12345", a.String())
}

func TestOutputBudget_Unlimited(t *testing.T) {
	budget := newOutputBudget(0)
	var out bytes.Buffer

	w := budget.wrap(&out)
	_, err := w.Write([]byte("anything goes"))
	require.NoError(t, err)
	assert.Equal(t, "anything goes", out.String())
}
