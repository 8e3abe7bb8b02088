package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	twoX = `{"type":"sum","terms":[{"type":"symbol","name":"x"},{"type":"symbol","name":"x"}]}`
	cube = `{"type":"power","base":{"type":"symbol","name":"x"},"exp":{"type":"integer","value":"3"}}`
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DERIVATER_ADDR", "")
	t.Setenv("DERIVATER_LOG_LEVEL", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimplify(t *testing.T) {
	out, err := run(t, "", "simplify", twoX)
	require.NoError(t, err)
	assert.Equal(t, "2*x\n", out)
}

func TestSimplify_Stdin(t *testing.T) {
	out, err := run(t, twoX, "simplify")
	require.NoError(t, err)
	assert.Equal(t, "2*x\n", out)
}

func TestSimplify_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.yaml")
	yaml := "type: sum\nterms:\n  - {type: symbol, name: y}\n  - {type: integer, value: 0}\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	out, err := run(t, "", "simplify", "--format", "yaml", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "y\n", out)
}

func TestSimplify_JSONOutput(t *testing.T) {
	out, err := run(t, "", "simplify", "-o", "json", twoX)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "product", m["type"])
}

func TestExpand(t *testing.T) {
	in := `{"type":"power","base":{"type":"sum","terms":[{"type":"symbol","name":"x"},{"type":"integer","value":"1"}]},"exp":{"type":"integer","value":"2"}}`
	out, err := run(t, "", "expand", in)
	require.NoError(t, err)
	assert.Equal(t, "2*x + x**2 + 1\n", out)
}

func TestDerivative(t *testing.T) {
	out, err := run(t, "", "derivative", cube)
	require.NoError(t, err)
	assert.Equal(t, "3*x**2\n", out)

	out, err = run(t, "", "derivative", "-n", "2", cube)
	require.NoError(t, err)
	assert.Equal(t, "6*x\n", out)

	out, err = run(t, "", "derivative", "--var", "y", cube)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestDerivative_NegativeN(t *testing.T) {
	_, err := run(t, "", "derivative", "-n", "-1", cube)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--n must be >= 0")
}

func TestReplace(t *testing.T) {
	out, err := run(t, "", "replace", cube,
		"--old", `{"type":"symbol","name":"x"}`,
		"--new", `{"type":"integer","value":"2"}`)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestReplace_RequiresFlags(t *testing.T) {
	_, err := run(t, "", "replace", cube)
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	half := `{"type":"power","base":{"type":"integer","value":"2"},"exp":{"type":"integer","value":"-1"}}`
	out, err := run(t, "", "number", half)
	require.NoError(t, err)
	assert.Equal(t, "1/2\n", out)

	out, err = run(t, "", "number", "--approx", `{"type":"constant","name":"tau"}`)
	require.NoError(t, err)
	assert.Equal(t, "6.283185307\n", out)

	_, err = run(t, "", "number", cube)
	assert.Error(t, err)
}

func TestBadInput(t *testing.T) {
	_, err := run(t, "", "simplify", "--format", "toml", twoX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "toml"`)

	_, err = run(t, "", "simplify", "-o", "latex", twoX)
	require.Error(t, err)

	_, err = run(t, "", "simplify", "-f", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read expression")
}

func TestLogLevelFlag(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "simplify", twoX)
	require.Error(t, err)

	_, err = run(t, "", "--log-level", "debug", "--dev", "simplify", twoX)
	assert.NoError(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derivater.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  max_body_bytes: -1\n"), 0644))

	_, err := run(t, "", "--config", path, "simplify", twoX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.max_body_bytes must be positive")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "derivater version dev\n", out)
}

func TestServe_StopsWithContext(t *testing.T) {
	t.Setenv("DERIVATER_ADDR", "")
	t.Setenv("DERIVATER_LOG_LEVEL", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, cmd.ExecuteContext(ctx))
}
