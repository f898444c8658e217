package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, options{disks: 2, from: 0, to: 2, format: "text"}))
	assert.Equal(t, "1 (0,1)\n2 (0,2)\n3 (1,2)\n", buf.String())
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, options{disks: 3, from: 0, to: 1, format: "json"}))

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 7, got.Count)
	require.Len(t, got.Moves, 7)
	assert.Equal(t, 0, got.Moves[0].From)
	assert.Equal(t, 1, got.Moves[0].To)
	assert.Equal(t, 0, got.Moves[6].From)
	assert.Equal(t, 1, got.Moves[6].To)
}

func TestRunZeroDisksJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, options{disks: 0, from: 0, to: 2, format: "json"}))
	assert.Contains(t, buf.String(), `"moves": []`)
}

func TestRunRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, run(&buf, options{disks: -1, to: 2, format: "text"}))
	assert.Error(t, run(&buf, options{disks: 3, from: 1, to: 1, format: "text"}))
	assert.Error(t, run(&buf, options{disks: 3, from: 0, to: 3, format: "text"}))
	assert.Error(t, run(&buf, options{disks: 30, to: 2, format: "text"}))
	assert.Error(t, run(&buf, options{disks: 3, to: 2, format: "xml"}))
	assert.Empty(t, buf.String())
}
