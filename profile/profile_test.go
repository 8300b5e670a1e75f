package profile_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/elevconf/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	assert.False(t, cfg.Enabled())
	assert.Zero(t, cfg.MemProfileRate)
	assert.Equal(t, "cpu-profile", cfg.Flags.CPUProfile)
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--allocs-profile=allocs.prof",
		"--goroutine-profile=goroutine.prof",
		"--mem-profile-rate=1024",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cpu.prof", cfg.CPUProfile)
	assert.Equal(t, "heap.prof", cfg.HeapProfile)
	assert.Equal(t, "allocs.prof", cfg.AllocsProfile)
	assert.Equal(t, "goroutine.prof", cfg.GoroutineProfile)
	assert.Equal(t, 1024, cfg.MemProfileRate)
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	completionFn, ok := cmd.GetFlagCompletionFunc("mem-profile-rate")
	require.True(t, ok)

	values, directive := completionFn(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Empty(t, values)
}

func TestProfilerSnapshots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.HeapProfile = filepath.Join(dir, "heap.prof")
	cfg.GoroutineProfile = filepath.Join(dir, "goroutine.prof")

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	assert.FileExists(t, cfg.HeapProfile)
	assert.FileExists(t, cfg.GoroutineProfile)
	assert.NoFileExists(t, filepath.Join(dir, "allocs.prof"))
}

func TestProfilerErrors(t *testing.T) {
	t.Parallel()

	t.Run("stop before start", func(t *testing.T) {
		t.Parallel()

		p := profile.NewConfig().NewProfiler()
		require.ErrorIs(t, p.Stop(), profile.ErrNotStarted)
	})

	t.Run("unwritable snapshots are combined", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing")

		cfg := profile.NewConfig()
		cfg.HeapProfile = filepath.Join(missing, "heap.prof")
		cfg.AllocsProfile = filepath.Join(missing, "allocs.prof")

		p := cfg.NewProfiler()
		require.NoError(t, p.Start())

		err := p.Stop()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "heap profile")
		assert.Contains(t, err.Error(), "allocs profile")
	})
}
