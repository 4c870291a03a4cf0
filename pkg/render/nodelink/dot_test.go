package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

func build(t *testing.T, v int64, prop graph.Property, pairs ...[2]graph.VertexID) *graph.Graph {
	t.Helper()
	coo := make([]graph.Pair, len(pairs))
	for i, p := range pairs {
		coo[i] = graph.Pair{Src: p[0], Dst: p[1]}
	}
	g, err := graph.FromCOO(graph.Structure{V: v}, coo, prop)
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}
	return g
}

func TestToDOT_Directed(t *testing.T) {
	g := build(t, 3, graph.Property{}, [2]graph.VertexID{0, 1}, [2]graph.VertexID{1, 2}, [2]graph.VertexID{0, 2})

	dot, err := ToDOT(g, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`0 [label="0"]`, `2 [label="2"]`, "0 -> 1;", "1 -> 2;", "0 -> 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if n := strings.Count(dot, "->"); n != 3 {
		t.Errorf("ToDOT() wrote %d arcs, want 3", n)
	}
}

func TestToDOT_UndirectedWritesEachEdgeOnce(t *testing.T) {
	g := build(t, 3, graph.Property{Undirected: true}, [2]graph.VertexID{0, 1}, [2]graph.VertexID{2, 1}, [2]graph.VertexID{2, 2})

	dot, err := ToDOT(g, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if strings.Contains(dot, "->") {
		t.Error("undirected output should not contain arcs")
	}
	for _, want := range []string{"0 -- 1;", "1 -- 2;", "2 -- 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if n := strings.Count(dot, "--"); n != 3 {
		t.Errorf("ToDOT() wrote %d edges, want 3", n)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := build(t, 2, graph.Property{BuildInEdges: true}, [2]graph.VertexID{0, 1})

	dot, err := ToDOT(g, Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.Contains(dot, `"1\nout: 0 in: 1"`) {
		t.Errorf("ToDOT() detailed output missing degrees:\n%s", dot)
	}
}

func TestToDOT_TooLarge(t *testing.T) {
	g, err := graph.New(graph.Structure{V: 10})
	if err != nil {
		t.Fatal(err)
	}

	_, err = ToDOT(g, Options{MaxVertices: 5})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToDOT() error = %v, want INVALID_INPUT", err)
	}
	if _, err := ToDOT(g, Options{MaxVertices: -1}); err != nil {
		t.Errorf("negative MaxVertices should disable the check: %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 62.00 116.00"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.Contains(out, `width="62" height="116"`) {
		t.Errorf("normalizeViewBox() missing pixel size: %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("normalizeViewBox() should leave headers without viewBox alone")
	}
}

func TestRenderSVG(t *testing.T) {
	g := build(t, 2, graph.Property{}, [2]graph.VertexID{0, 1})
	dot, err := ToDOT(g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
