// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

const snSlowness = "3 2\n0 5 10\n0 100\n#\n13.5 14.25 15.125\n#\n12 12.5 13\n"

// setup isolates the command from ambient configuration and returns a model
// directory holding the Sn slowness table.
func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"MODEL_DIR", "PHASE", "ATTRIBUTE", "LOG_LEVEL", "LOG_ENCODING", "LOG_DEVELOPMENT", "LOG_OUTPUT"} {
		t.Setenv("UNCERTAINTY_"+k, "")
		require.NoError(t, os.Unsetenv("UNCERTAINTY_"+k))
	}
	t.Chdir(t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, uncertainty.FileName(phase.Sn, phase.Slowness))
	require.NoError(t, os.WriteFile(path, []byte(snSlowness), 0o644))

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestQuery(t *testing.T) {
	dir := setup(t)
	out, err := run(t, "query", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH",
		"--distance", "5", "--depth", "0")
	require.NoError(t, err)
	assert.Equal(t, "5 0 14.2500\n", out)

	out, err = run(t, "query", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH",
		"--distance", "0", "--distance", "10", "--depth", "100")
	require.NoError(t, err)
	assert.Equal(t, "0 100 12.0000\n10 100 13.0000\n", out)
}

// TestQuery_VarianceMatchesValue checks that both quantities are read from
// the same table and printed with the same unit factor.
func TestQuery_VarianceMatchesValue(t *testing.T) {
	dir := setup(t)
	args := []string{"query", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH",
		"--distance", "5", "--distance", "7.5", "--depth", "40"}

	value, err := run(t, args...)
	require.NoError(t, err)
	variance, err := run(t, append(args, "--variance")...)
	require.NoError(t, err)
	assert.Equal(t, value, variance)
	assert.Equal(t, "5 40 13.5500\n", strings.SplitAfter(variance, "\n")[0])
}

// TestLogOutputFile routes debug logs to a file sink chosen on the command line.
func TestLogOutputFile(t *testing.T) {
	dir := setup(t)
	logPath := filepath.Join(t.TempDir(), "uncertainty.log")

	_, err := run(t, "query", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH",
		"--distance", "5", "--log-level", "debug", "--log-encoding", "json", "--log-output", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"configuration resolved"`)
	assert.Contains(t, string(data), `"message":"query answered"`)
}

func TestQuery_FromEnvironment(t *testing.T) {
	dir := setup(t)
	t.Setenv("UNCERTAINTY_MODEL_DIR", dir)
	t.Setenv("UNCERTAINTY_PHASE", "Sn")
	t.Setenv("UNCERTAINTY_ATTRIBUTE", "SH")

	out, err := run(t, "query", "--distance", "2.5", "--depth", "50")
	require.NoError(t, err)
	// Rows at 2.5°: 13.875 and 12.25, blended halfway in depth.
	assert.Equal(t, "2.5 50 13.0625\n", out)
}

func TestQuery_Errors(t *testing.T) {
	dir := setup(t)
	_, err := run(t, "query", "--model-dir", dir, "--phase", "Pg", "--attribute", "SH", "--distance", "1")
	assert.ErrorContains(t, err, "no SH table for phase Pg")

	_, err = run(t, "query", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH",
		"--distance", "1", "--distance", "2", "--depth", "1", "--depth", "2", "--depth", "3")
	assert.ErrorIs(t, err, uncertainty.ErrDimensionMismatch)

	_, err = run(t, "query", "--phase", "PKP", "--distance", "1")
	assert.ErrorIs(t, err, phase.ErrUnknownPhase)
}

func TestShow(t *testing.T) {
	dir := setup(t)
	base := []string{"show", "--model-dir", dir, "--phase", "Sn", "--attribute", "SH"}

	out, err := run(t, append(base, "--format", "table")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Uncertainty phase=Sn attribute=SH units=sec/deg"), out)

	out, err = run(t, append(base, "--format", "file")...)
	require.NoError(t, err)
	assert.Equal(t, "3 2\n0 5 10\n0 100\n#\n13.5000 14.2500 15.1250\n#\n12.0000 12.5000 13.0000\n", out)

	out, err = run(t, append(base, "--format", "json")...)
	require.NoError(t, err)
	var v gridView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Sn", v.Phase)
	assert.Equal(t, "sec/deg", v.Units)
	assert.Equal(t, []float64{0, 100}, v.Depths)
	require.Len(t, v.Values, 2)
	assert.InDeltaSlice(t, []float64{12, 12.5, 13}, v.Values[1], 1e-9)

	out, err = run(t, append(base, "--format", "yaml")...)
	require.NoError(t, err)
	var y gridView
	require.NoError(t, yaml.Unmarshal([]byte(out), &y))
	assert.Equal(t, "SH", y.Attribute)
	assert.Equal(t, []float64{0, 5, 10}, y.Distances)
	assert.Contains(t, out, "distances: [0, 5, 10]")

	_, err = run(t, append(base, "--format", "xml")...)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestConvert_RoundTrip(t *testing.T) {
	dir := setup(t)
	src := filepath.Join(dir, uncertainty.FileName(phase.Sn, phase.Slowness))
	work := t.TempDir()
	bin := filepath.Join(work, "sn.bin.gz")
	buf := filepath.Join(work, "sn.buf")
	lz := filepath.Join(work, "sn.txt.lz4")
	txt := filepath.Join(work, "sn.txt")
	common := []string{"--phase", "Sn", "--attribute", "SH"}

	for _, step := range [][2]string{{src, bin}, {bin, buf}, {buf, lz}, {lz, txt}} {
		_, err := run(t, append([]string{"convert", "--in", step[0], "--out", step[1]}, common...)...)
		require.NoError(t, err, "%s -> %s", step[0], step[1])
	}

	want, err := readGrid(src, "", phase.Sn, phase.Slowness)
	require.NoError(t, err)
	got, err := readGrid(txt, "", phase.Sn, phase.Slowness)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	raw, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
}

func TestExport(t *testing.T) {
	dir := setup(t)
	out := t.TempDir()
	src := filepath.Join(dir, uncertainty.FileName(phase.Sn, phase.Slowness))

	got, err := run(t, "export", "--file", src, "--phase", "Sn", "--attribute", "SH", "--out", out)
	require.NoError(t, err)
	path := filepath.Join(out, "Uncertainty_Sn_SH.txt")
	assert.Equal(t, path+"\n", got)
	assert.FileExists(t, path)
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "uncertainty v"+version)
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		format, path, want string
	}{
		{"", "a.txt", formatText},
		{"", "a.bin", formatBinary},
		{"", "a.bin.gz", formatBinary},
		{"", "a.buf", formatBuffer},
		{"", "Uncertainty_Pn_TT", formatText},
		{formatBuffer, "a.txt", formatBuffer},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.format, tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%q %q", tc.format, tc.path)
	}

	_, err := resolveFormat("yaml", "a.txt")
	assert.ErrorContains(t, err, "unknown format")
}
