package main

import (
	"bytes"
	"testing"

	"github.com/linmemparser/linmemparser/internal/output"
	"github.com/linmemparser/linmemparser/internal/plugins"
	"github.com/linmemparser/linmemparser/internal/walker"
	"github.com/stretchr/testify/require"
)

func TestWriteResultProcesses(t *testing.T) {
	var buf bytes.Buffer
	procs := []walker.Process{{Pid: 1, Comm: "init"}}
	require.NoError(t, writeResult(&buf, output.Text, procs))
	require.Contains(t, buf.String(), "init")
}

func TestWriteResultForest(t *testing.T) {
	var buf bytes.Buffer
	forest := plugins.PSTree([]walker.Process{{Pid: 1, PPid: 0, Comm: "init"}})
	require.NoError(t, writeResult(&buf, output.Text, forest))
	require.Contains(t, buf.String(), "init")
}

func TestWriteResultUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	err := writeResult(&buf, output.Text, 42)
	require.Error(t, err)
}
