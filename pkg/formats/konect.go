package formats

import (
	"io"
	"strings"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// KonectType identifies the KONECT parser.
const KonectType = "konect"

// Konect reads KONECT network files (out.*, .konect, .tsv).
//
//	% sym unweighted
//	% 3 4 4
//	1 2
//	2 3
//	3 4
//
// The first line declares the structure (sym, asym or bip) and the weight
// kind. An optional second line "% E V [V2]" declares the counts. Data lines
// are "u v [weight [timestamp]]", 1-indexed; weights may be signed.
//
// Bipartite networks number both sides from 1; the right side is shifted
// past the left one so the graph has V + V2 vertices.
type Konect struct{}

func (*Konect) Type() string { return KonectType }

func (*Konect) Supports(name string) bool {
	return strings.HasPrefix(name, "out.") || hasExt(name, ".konect", ".tsv")
}

func (*Konect) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, KonectType, prop.IndexBase.Offset(graph.BaseOne))

	if !s.nextData(func(string) bool { return false }) {
		return nil, s.truncated("missing metadata line")
	}
	meta := strings.Fields(strings.TrimPrefix(s.text, "%"))
	if !strings.HasPrefix(s.text, "%") || len(meta) < 2 {
		return nil, s.fail(errors.ReasonMalformedHeader, "want %% <sym|asym|bip> <weights>")
	}
	var st graph.Structure
	bipartite := false
	switch meta[0] {
	case "sym":
		st.Direction = graph.Undirected
	case "asym":
		st.Direction = graph.Directed
	case "bip":
		bipartite = true
	default:
		return nil, s.fail(errors.ReasonMalformedHeader, "unknown structure %q", meta[0])
	}
	st.Weighted = meta[1] != "unweighted"

	v, left := int64(unknownV), int64(0)
	var coo []graph.Pair
	counts := true
	for s.next() {
		if s.text == "" {
			continue
		}
		if strings.HasPrefix(s.text, "%") {
			if counts {
				counts = false
				if err := konectCounts(s, &st, &v, &left, bipartite); err != nil {
					return nil, err
				}
			}
			continue
		}
		counts = false

		fields := strings.Fields(s.text)
		p, err := konectEdge(s, fields, v, left, bipartite)
		if err != nil {
			return nil, err
		}
		for _, tok := range fields[2:min(len(fields), 4)] {
			if err := s.weight(tok); err != nil {
				return nil, err
			}
		}
		coo = append(coo, p)
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	if v == unknownV {
		if bipartite {
			shiftRight(coo)
		}
		v = inferV(coo)
	}
	st.V = v
	return &Result{Type: KonectType, Structure: st, COO: coo}, nil
}

// konectCounts reads the optional "% E V [V2]" line. Lines that do not hold
// numbers are ordinary comments.
func konectCounts(s *scanner, st *graph.Structure, v, left *int64, bipartite bool) error {
	fields := strings.Fields(strings.TrimPrefix(s.text, "%"))
	if len(fields) < 2 || len(fields) > 3 {
		return nil
	}
	for _, f := range fields {
		if strings.Trim(f, "0123456789") != "" {
			return nil
		}
	}
	e, err := s.count(fields[0], "edge count")
	if err != nil {
		return err
	}
	n, err := s.count(fields[1], "vertex count")
	if err != nil {
		return err
	}
	if bipartite && len(fields) == 3 {
		n2, err := s.count(fields[2], "vertex count")
		if err != nil {
			return err
		}
		*left = n
		n += n2
	}
	if n > graph.MaxVertices {
		return s.fail(errors.ReasonMalformedHeader, "%d vertices exceed the limit %d", n, graph.MaxVertices)
	}
	st.E, *v = e, n
	return nil
}

func konectEdge(s *scanner, fields []string, v, left int64, bipartite bool) (graph.Pair, error) {
	if !bipartite || left == 0 {
		return s.edge(fields, v)
	}
	if len(fields) < 2 {
		return graph.Pair{}, s.fail(errors.ReasonBadToken, "want 2 vertex ids, got %d tokens", len(fields))
	}
	src, err := s.vertex(fields[0], left)
	if err != nil {
		return graph.Pair{}, err
	}
	dst, err := s.vertex(fields[1], v-left)
	if err != nil {
		return graph.Pair{}, err
	}
	return graph.Pair{Src: src, Dst: dst + graph.VertexID(left)}, nil
}

// shiftRight moves the right side of a bipartite edge list past the largest
// left id, for files without declared side sizes.
func shiftRight(coo []graph.Pair) {
	var left graph.VertexID
	for _, p := range coo {
		left = max(left, p.Src+1)
	}
	for i := range coo {
		coo[i].Dst += left
	}
}
