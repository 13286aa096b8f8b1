package main

import (
	"os"
	"path/filepath"
	"testing"

	"mirakextractor/internal/config"
	"mirakextractor/internal/core/reporter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routinatorConf = `
repository-dir = "/var/lib/routinator/rpki-cache"
rtr-listen = ["127.0.0.1:3323"]
http-listen = ["127.0.0.1:8323"]
`

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func TestValidateRoutinator(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	good := filepath.Join(dir, "good.conf")
	require.NoError(t, os.WriteFile(good, []byte(routinatorConf), 0o644))
	assert.NoError(t, execute(t, "validate-routinator", "--file", good))

	bad := filepath.Join(dir, "bad.conf")
	require.NoError(t, os.WriteFile(bad, []byte("refresh = \"soon\"\n"), 0o644))
	assert.Error(t, execute(t, "validate-routinator", "--file", bad))

	assert.Error(t, execute(t, "validate-routinator", "--file", filepath.Join(dir, "missing.conf")))
}

func TestInitRuntime_OutputFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, execute(t, "config", "--log-level", "fatal"))
	assert.Equal(t, "./mirak.json", cfg.Output.ReportPath)

	t.Setenv("MIRAK_OUTPUT_REPORT", "/tmp/from-env.json")
	require.NoError(t, execute(t, "config"))
	assert.Equal(t, "/tmp/from-env.json", cfg.Output.ReportPath)
}

func TestBuildReporter(t *testing.T) {
	base := &config.Config{Output: &config.OutputConfig{ReportPath: "out.json"}}

	multi, ok := buildReporter(base).(*reporter.MultiReporter)
	require.True(t, ok)
	assert.Equal(t, 1, multi.Len())

	extractOpts = extractOptions{CsvPath: "apps.csv", Verbose: true}
	t.Cleanup(func() { extractOpts = extractOptions{} })
	multi = buildReporter(base).(*reporter.MultiReporter)
	assert.Equal(t, 3, multi.Len())
}

func TestBuildRunner_UnknownSource(t *testing.T) {
	bad := &config.Config{Extractor: &config.ExtractorConfig{IdentitySources: []string{"motd"}}}
	_, err := buildRunner(bad, nil)
	assert.Error(t, err)
}
