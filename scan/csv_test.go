package scan_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/katalvlaran/torsionwell/scan"
	"github.com/katalvlaran/torsionwell/stability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRows is a two-row aggregate with one failure.
func sampleRows() []scan.Row {
	good := scan.Row{
		Index: 0,
		Tuple: roundTuple(),
		Result: stability.Result{
			R: 1.4562, Eps: 0, Value: 53.125, Converged: true, Iterations: 42,
		},
		Class: stability.StableWell,
	}
	bad := scan.Row{Index: 1, Tuple: roundTuple(), Err: "potential: coupling domain"}

	return []scan.Row{good, bad}
}

// TestWriteCSV exports a parseable table with stable columns.
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, scan.WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "family", header[1])
	assert.Equal(t, "alpha", header[9])
	assert.Equal(t, "class", header[15])

	assert.Equal(t, "round", records[1][1])
	assert.Equal(t, "mixed", records[1][2])
	assert.Equal(t, "-3", records[1][4])
	assert.Equal(t, "1.4562", records[1][10])
	assert.Equal(t, "true", records[1][13])
	assert.Equal(t, "stable-well-with-barrier", records[1][15])
	assert.Empty(t, records[1][16])

	// failed rows leave the class column empty and carry the error
	assert.Empty(t, records[2][15])
	assert.Equal(t, "potential: coupling domain", records[2][16])
}
