package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-015/hexplane/pkg/hex"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOriginText(t *testing.T) {
	out, err := execute(t, "origin", "23", "33")
	require.NoError(t, err)
	assert.Equal(t, "23 43\n", out)
}

func TestOriginNegative(t *testing.T) {
	out, err := execute(t, "origin", "--", "-5", "-3")
	require.NoError(t, err)
	assert.Equal(t, "-5 -1\n", out)
}

func TestOriginJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "origin", "23", "33")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":23,"y":43}`, strings.TrimSpace(out))
}

func TestOriginBadArgument(t *testing.T) {
	_, err := execute(t, "origin", "twelve", "0")
	assert.Error(t, err)
}

func TestOriginOverflow(t *testing.T) {
	_, err := execute(t, "origin", "9007199254740993", "0")
	assert.ErrorIs(t, err, hex.ErrInvalidInput)
}

func TestLocateText(t *testing.T) {
	out, err := execute(t, "locate", "23.4", "43.1")
	require.NoError(t, err)
	assert.Equal(t, "23 33\n", out)
}

func TestLocateJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "locate", "23.4", "43.1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"i":23,"j":33}`, strings.TrimSpace(out))
}

func TestLocateRejectsNaN(t *testing.T) {
	_, err := execute(t, "locate", "NaN", "0")
	assert.ErrorIs(t, err, hex.ErrInvalidInput)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "origin", "0", "0")
	assert.Error(t, err)
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.svg")
	_, err := execute(t, "render",
		"--i-min", "0", "--i-max", "1", "--j-min", "0", "--j-max", "1",
		"--size", "4", "-o", path)
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "<?xml"))
	assert.Equal(t, 4, strings.Count(string(body), "<polygon"))
}

func TestRenderDiskToStdout(t *testing.T) {
	out, err := execute(t, "render", "--disk", "0,0,1", "--size", "8")
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(out, "<polygon"))
}

func TestRenderBadDisk(t *testing.T) {
	_, err := execute(t, "render", "--disk", "1,2")
	assert.Error(t, err)

	_, err = execute(t, "render", "--disk", "1,2,-3")
	assert.Error(t, err)
}

func TestParseDiskRegion(t *testing.T) {
	region, err := parseDiskRegion("3, -2, 4")
	require.NoError(t, err)
	assert.True(t, region.Disk)
	assert.Equal(t, hex.Address{I: 3, J: -2}, region.Center)
	assert.Equal(t, 4, region.Radius)
}
