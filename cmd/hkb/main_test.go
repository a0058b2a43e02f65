package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaloyanYosifov/holy-kern-base/libhkb"
)

// run executes hkb with args against a throwaway config file.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var pinned = []string{"--now", "2023-06-14T22:00:00Z", "--timezone", "UTC", "--json"}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestResolveCmd(t *testing.T) {
	args := append([]string{"resolve", `{"shape":"in","amount":"5","unit":"minutes"}`}, pinned...)
	out, _, err := run(t, "", args...)
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, "relative", m["kind"])
	assert.Equal(t, float64(5), m["amount"])
	assert.Equal(t, "minute", m["unit"])
	assert.Equal(t, "2023-06-14T22:05:00Z", m["remindAt"])
}

func TestResolveCmdStdin(t *testing.T) {
	args := append([]string{"resolve"}, pinned...)
	out, _, err := run(t, `{"shape":"tomorrow","at":{"hour":"09","minute":"30"}}`, args...)
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, "absolute", m["kind"])
	assert.Equal(t, "2023-06-15T09:30:00Z", m["time"])
}

func TestResolveCmdPolicies(t *testing.T) {
	sentence := `{"shape":"at","hour":"21","minute":"00"}`

	out, _, err := run(t, "", append([]string{"resolve", sentence}, pinned...)...)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-15T21:00:00Z", decode(t, out)["time"])

	out, _, err = run(t, "", append([]string{"resolve", sentence, "--at-rollover", "same-day"}, pinned...)...)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-14T21:00:00Z", decode(t, out)["time"])
}

func TestResolveCmdErrors(t *testing.T) {
	_, _, err := run(t, "", append([]string{"resolve", `{"shape":"at","hour":"24","minute":"00"}`}, pinned...)...)
	assert.ErrorIs(t, err, libhkb.ErrInvalidTime)
	assert.Equal(t, 1, exitCode(err))

	_, _, err = run(t, "", append([]string{"resolve", `{"shape":"on","day":"31st","month":"april"}`}, pinned...)...)
	assert.ErrorIs(t, err, libhkb.ErrInvalidDate)

	_, _, err = run(t, "", append([]string{"resolve", `{"shape":"in","amount":"10000000000","unit":"seconds"}`}, pinned...)...)
	assert.ErrorIs(t, err, libhkb.ErrAmountOutOfRange)
	assert.Equal(t, 1, exitCode(err))

	_, _, err = run(t, "", append([]string{"resolve", `{"shape":"in","amount":"99999999999999999999","unit":"minutes"}`}, pinned...)...)
	assert.ErrorIs(t, err, libhkb.ErrAmountOutOfRange)
	assert.Equal(t, 1, exitCode(err))

	_, _, err = run(t, "", append([]string{"resolve", `{"shape":"whenever"}`}, pinned...)...)
	assert.ErrorIs(t, err, libhkb.ErrInternalInvariantViolation)
	assert.Equal(t, 2, exitCode(err))

	_, _, err = run(t, "", "resolve", `{"shape":"tomorrow"}`, "--now", "   ")
	assert.Error(t, err)

	_, _, err = run(t, "", "resolve", `{"shape":"tomorrow"}`, "--year-policy", "past")
	assert.Error(t, err)
}

func TestResolveCmdHuman(t *testing.T) {
	out, _, err := run(t, "", "resolve", `{"shape":"next","target":"week"}`,
		"--now", "2023-06-14T22:00:00Z", "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "in 7 days")
	assert.Contains(t, out, "2023-06-21 22:00")
}

func TestResolveCmdDebugLogs(t *testing.T) {
	_, stderr, err := run(t, "", append([]string{"--debug", "resolve", `{"shape":"in_alt","cardinal":"two"}`}, pinned...)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "sentence resolved")
	assert.Contains(t, stderr, "shape=in_alt")
}

func TestBatchCmd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sentences.jsonl")
	lines := strings.Join([]string{
		`{"shape":"in","amount":"2","unit":"hours"}`,
		``,
		`{"shape":"on","day":"31st","month":"april"}`,
		`{"shape":"at","hour":"18","minute":"30","on":{"day":"3rd","month":"may"}}`,
	}, "\n")
	require.NoError(t, os.WriteFile(file, []byte(lines), 0600))

	out, _, err := run(t, "", append([]string{"batch", file, "--concurrency", "2"}, pinned...)...)
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, float64(3), m["count"])
	assert.Equal(t, float64(1), m["failed"])

	values := m["value"].([]any)
	require.Len(t, values, 3)
	assert.Equal(t, "2023-06-15T00:00:00Z", values[0].(map[string]any)["remindAt"])
	assert.Equal(t, "invalid_date", values[1].(map[string]any)["kind"])
	assert.Equal(t, "2024-05-03T18:30:00Z", values[2].(map[string]any)["time"])
}

func TestBatchCmdBadLine(t *testing.T) {
	_, _, err := run(t, "{\"shape\":\"tomorrow\"}\nnot json\n", append([]string{"batch"}, pinned...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", path, "config", "set", "--timezone", "Europe/Sofia", "--year-policy", "current"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Configuration saved")

	stdout.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", path, "config", "show", "--json"})
	require.NoError(t, cmd.Execute())

	m := decode(t, stdout.String())
	assert.Equal(t, "Europe/Sofia", m["timezone"])
	assert.Equal(t, "current", m["year_policy"])
	assert.Equal(t, "next-day", m["at_rollover"])

	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", path, "config", "set", "--at-rollover", "sometimes"})
	assert.Error(t, cmd.Execute())
}

func TestMatchCmd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins")
	}

	dir := t.TempDir()
	script := `#!/bin/sh
case "$1" in
  "in 5 minutes") echo '{"shape":"in","amount":"5","unit":"minutes"}' ;;
esac
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hkb-fake"), []byte(script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	out, _, err := run(t, "", append([]string{"match", "--matcher", "fake", "In", "5", "minutes"}, pinned...)...)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-14T22:05:00Z", decode(t, out)["remindAt"])

	_, _, err = run(t, "", append([]string{"match", "--matcher", "fake", "whenever"}, pinned...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reminder time recognized")
}
