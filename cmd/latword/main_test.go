package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archive = "utt1\n0 1 1 1 0.5,0\n1 2 2 2 0.25,0\n2 3 3 3 2,0\n3\n"

// run executes the root command with fresh flag values.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestExpand_PerLattice(t *testing.T) {
	out, err := run(t, archive, "expand", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "utt1\n"))
	assert.Contains(t, out, "#sym 2 1_2\n")
	assert.Contains(t, out, "0 1 2 2 0.75,0\n")
}

func TestExpand_SaveSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	out, err := run(t, archive, "expand", "3", "--save-symbols", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "#sym")
	assert.Contains(t, out, "0 1 2 2 0.75,0\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2\t1_2\n")
}

func TestExpand_MaxLengthFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	out, err := run(t, archive, "expand", "3", "--max-length", "1", "--save-symbols", path)
	require.NoError(t, err)
	assert.Equal(t, "utt1\n\n", out)
}

func TestExpand_Files(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(archive), 0o644))

	_, err := run(t, "", "expand", "3", in, outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0 1 2 2 0.75,0\n")
}

func TestExpand_RejectsEpsilonDelimiter(t *testing.T) {
	_, err := run(t, archive, "expand", "0 3")
	assert.Error(t, err)
}

func TestExpand_RedisSymbolSpace(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := run(t, archive, "expand", "3", "--redis-addr", mr.Addr())
	require.NoError(t, err)
	assert.Contains(t, out, "0 1 2 2 0.75,0\n")

	table, err := run(t, "", "symbols", "--redis-addr", mr.Addr())
	require.NoError(t, err)
	assert.Contains(t, table, "0\t0\n")
	assert.Contains(t, table, "2\t1_2\n")

	_, err = run(t, "", "symbols", "--redis-addr", mr.Addr(), "--reset")
	require.NoError(t, err)
	table, err = run(t, "", "symbols", "--redis-addr", mr.Addr())
	require.NoError(t, err)
	assert.NotContains(t, table, "1_2")
}

func TestSymbols_NeedsRedis(t *testing.T) {
	_, err := run(t, "", "symbols")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	expanded, err := run(t, archive, "expand", "3")
	require.NoError(t, err)

	out, err := run(t, expanded, "graph", "--key", "utt1", "--highlight", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `"1_2"`)
	assert.Contains(t, out, "class s0 highlight;")

	_, err = run(t, expanded, "graph", "--key", "nope")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	out, err := run(t, archive, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "| utt1 | 4 | 3 | 1 | 0 | yes |")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "latword version "))
}
