package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Table(t *testing.T) {
	var out, errOut bytes.Buffer

	code := run([]string{"-points", "5", "-peak-freq", "1000", "-peak-gain", "12", "-peak-q", "2", "-lowcut-slope", "48 dB/Oct"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9, out.String())
	assert.Contains(t, lines[0], "48 dB/Oct")
	assert.Contains(t, lines[1], "max pole radius 0.")
	assert.Contains(t, lines[3], "Designed [dB]")
}

func TestRun_Slopes(t *testing.T) {
	var out bytes.Buffer

	require.Equal(t, 0, run([]string{"-slopes"}, &out, &bytes.Buffer{}))
	assert.Equal(t, "12 dB/Oct\n24 dB/Oct\n36 dB/Oct\n48 dB/Oct\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	var errOut bytes.Buffer

	assert.Equal(t, 1, run([]string{"-peak-gain", "40"}, &bytes.Buffer{}, &errOut))
	assert.Contains(t, errOut.String(), "out of range")

	assert.Equal(t, 1, run([]string{"-lowcut-slope", "7"}, &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Equal(t, 1, run([]string{"-rate", "0"}, &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Equal(t, 2, run([]string{"-nope"}, &bytes.Buffer{}, &bytes.Buffer{}))
}

func TestRun_Preset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eq:\n  high_cut_freq: 8000\n  high_cut_slope: 24\n"), 0o600))

	var out, errOut bytes.Buffer
	require.Equal(t, 0, run([]string{"-preset", path, "-points", "3"}, &out, &errOut), errOut.String())
	assert.Contains(t, out.String(), "high cut 8000 Hz 24 dB/Oct")
}
