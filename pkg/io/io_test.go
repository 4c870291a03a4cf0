package io_test

import (
	"bytes"
	"encoding/binary"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/formats"
	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
)

func randomGraph(t *testing.T, v int64, e int, prop graph.Property) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewPCG(uint64(v), uint64(e)))
	coo := make([]graph.Pair, e)
	for i := range coo {
		coo[i] = graph.Pair{Src: graph.VertexID(rng.Int64N(v)), Dst: graph.VertexID(rng.Int64N(v))}
	}
	g, err := graph.FromCOO(graph.Structure{V: v}, coo, prop)
	require.NoError(t, err)
	return g
}

func small(t *testing.T, prop graph.Property) *graph.Graph {
	t.Helper()
	coo := []graph.Pair{{Src: 0, Dst: 1}, {Src: 1, Dst: 2}, {Src: 0, Dst: 2}}
	g, err := graph.FromCOO(graph.Structure{V: 3}, coo, prop)
	require.NoError(t, err)
	return g
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		prop graph.Property
	}{
		{"plain", graph.Property{}},
		{"in-edges", graph.Property{BuildInEdges: true}},
		{"sorted undirected", graph.Property{Sorted: true, Undirected: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := randomGraph(t, 1000, 8000, tt.prop)

			var buf bytes.Buffer
			require.NoError(t, pkgio.WriteBinary(g, &buf))
			back, err := pkgio.ReadBinary(&buf)
			require.NoError(t, err)

			assert.Equal(t, g.Structure().V, back.V())
			assert.Equal(t, g.E(), back.E())
			assert.Equal(t, g.Directed(), back.Directed())
			assert.Equal(t, g.Property().Sorted, back.Property().Sorted)
			assert.Equal(t, g.OutOffsets(), back.OutOffsets())
			assert.Equal(t, g.OutEdges(), back.OutEdges())
			assert.Equal(t, g.OutDegrees(), back.OutDegrees())
			assert.Equal(t, g.InOffsets(), back.InOffsets())
			assert.Equal(t, g.InEdges(), back.InEdges())
		})
	}
}

func TestBinaryLayout(t *testing.T) {
	g := small(t, graph.Property{BuildInEdges: true})
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteBinary(g, &buf))
	data := buf.Bytes()

	// header + 2 offset arrays of V+1 + 2 edge arrays of E
	require.Len(t, data, 24+2*4*8+2*3*4)
	assert.Equal(t, "CSRG", string(data[:4]))
	assert.Equal(t, pkgio.Version, binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, pkgio.FlagDirected|pkgio.FlagInEdges, binary.LittleEndian.Uint16(data[6:]))
	assert.EqualValues(t, 3, binary.LittleEndian.Uint64(data[8:]))
	assert.EqualValues(t, 3, binary.LittleEndian.Uint64(data[16:]))
	assert.EqualValues(t, 2, binary.LittleEndian.Uint64(data[24+8:]), "out-offsets[1]")

	h, err := pkgio.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, pkgio.Header{Version: 1, Flags: 3, V: 3, E: 3}, h)
}

func TestBinaryEmpty(t *testing.T) {
	g, err := graph.New(graph.Structure{V: 5})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteBinary(g, &buf))

	back, err := pkgio.ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, make([]graph.EdgeOffset, 6), back.OutOffsets())
	assert.Empty(t, back.OutEdges())
}

func TestReadBinaryErrors(t *testing.T) {
	g := small(t, graph.Property{})
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteBinary(g, &buf))
	good := buf.Bytes()

	corrupt := func(f func([]byte)) []byte {
		b := bytes.Clone(good)
		f(b)
		return b
	}
	tests := []struct {
		name   string
		data   []byte
		reason errors.Reason
	}{
		{"bad magic", corrupt(func(b []byte) { copy(b, "GRSC") }), errors.ReasonBadMagic},
		{"short header", good[:10], errors.ReasonTruncated},
		{"bad version", corrupt(func(b []byte) { binary.LittleEndian.PutUint16(b[4:], 9) }), errors.ReasonMalformedHeader},
		{"negative vertices", corrupt(func(b []byte) { binary.LittleEndian.PutUint64(b[8:], ^uint64(0)) }), errors.ReasonMalformedHeader},
		{"truncated edges", good[:len(good)-2], errors.ReasonTruncated},
		{"missing in-edges", corrupt(func(b []byte) { b[6] |= byte(pkgio.FlagInEdges) }), errors.ReasonTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pkgio.ReadBinary(bytes.NewReader(tt.data))
			var pe *errors.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.reason, pe.Reason)
			assert.Equal(t, pkgio.BinaryFormat, pe.Format)
		})
	}
}

func TestReadBinaryInvalidArrays(t *testing.T) {
	g := small(t, graph.Property{})
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteBinary(g, &buf))
	data := buf.Bytes()

	// last out-edge points past V
	binary.LittleEndian.PutUint32(data[len(data)-4:], 99)
	_, err := pkgio.ReadBinary(bytes.NewReader(data))
	var se *errors.StructureError
	assert.ErrorAs(t, err, &se)
}

func TestExportImportBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.csr")
	g := small(t, graph.Property{Sorted: true})

	require.NoError(t, pkgio.ExportBinary(g, path))
	back, err := pkgio.ImportBinary(path)
	require.NoError(t, err)
	assert.Equal(t, g.OutEdges(), back.OutEdges())
	assert.True(t, back.Property().Sorted)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestExportErrors(t *testing.T) {
	g := small(t, graph.Property{})
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "g.csr")

	err := pkgio.ExportBinary(g, missing)
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "create", ioErr.Op)

	_, err = pkgio.ImportBinary(missing)
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Op)

	assert.True(t, errors.Is(pkgio.ExportMarket(g, ""), errors.ErrCodeInvalidPath))
}

func TestExportKeepsPreviousFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o700) })
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	err := pkgio.ExportJSON(small(t, graph.Property{}), path)
	require.Error(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestWriteMarket(t *testing.T) {
	g := small(t, graph.Property{})
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteMarket(g, &buf))

	want := "%%MatrixMarket matrix coordinate pattern general\n3 3 3\n1 2\n1 3\n2 3\n"
	assert.Equal(t, want, buf.String())
}

func TestMarketRoundTrip(t *testing.T) {
	g := randomGraph(t, 200, 1000, graph.Property{Undirected: true, Dedup: true})
	path := filepath.Join(t.TempDir(), "g.mtx")
	require.NoError(t, pkgio.ExportMarket(g, path))

	back, err := formats.Load(path, graph.Property{})
	require.NoError(t, err)
	assert.Equal(t, g.OutOffsets(), back.OutOffsets())
	assert.Equal(t, g.OutEdges(), back.OutEdges())
}

func TestJSONRoundTrip(t *testing.T) {
	g := small(t, graph.Property{Undirected: true})
	var buf bytes.Buffer
	require.NoError(t, pkgio.WriteJSON(g, &buf))
	assert.Contains(t, buf.String(), `"vertices": 3`)
	assert.Contains(t, buf.String(), `"directed": false`)

	back, err := pkgio.ReadJSON(&buf, graph.Property{})
	require.NoError(t, err)
	assert.False(t, back.Directed())
	assert.Equal(t, g.OutOffsets(), back.OutOffsets())
	assert.Equal(t, g.OutEdges(), back.OutEdges())
}

func TestReadJSONErrors(t *testing.T) {
	_, err := pkgio.ReadJSON(strings.NewReader("{"), graph.Property{})
	assert.Error(t, err)

	_, err = pkgio.ReadJSON(strings.NewReader(`{"vertices": 2, "directed": true, "edges": [[0, 5]]}`), graph.Property{})
	assert.True(t, errors.Is(err, errors.ErrCodeStructure))
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	g := small(t, graph.Property{})
	require.NoError(t, pkgio.ExportJSON(g, path))

	back, err := pkgio.ImportJSON(path, graph.Property{BuildInEdges: true})
	require.NoError(t, err)
	assert.Equal(t, g.ToCOO(), back.ToCOO())
	assert.True(t, back.HasInEdges())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.svg")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, pkgio.WriteFile(path, []byte("<svg/>")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	err = pkgio.WriteFile(filepath.Join(path, "below-a-file"), nil)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
