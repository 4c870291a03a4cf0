package formats

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
)

// Parser reads one on-disk graph dialect.
type Parser interface {
	// Parse reads the whole stream and returns the edge list, or a ready
	// graph for formats that store CSR arrays directly.
	Parse(r io.Reader, prop graph.Property) (*Result, error)
	// Supports reports whether this parser handles the given file name.
	Supports(filename string) bool
	// Type returns the format identifier (e.g., "market", "snap").
	Type() string
}

// Result holds what a parser read from its input.
type Result struct {
	Type      string          // Parser type that produced this result
	Structure graph.Structure // Declared or inferred counts and kind
	COO       []graph.Pair    // Edge list, 0-indexed (text formats)
	Graph     *graph.Graph    // Prebuilt graph (binary snapshots)
}

// Build turns the result into a graph. Text formats go through
// [graph.FromCOO]. A binary snapshot is returned as stored unless prop asks
// for a transformation it does not already carry, in which case its edges
// are rebuilt.
func (r *Result) Build(prop graph.Property) (*graph.Graph, error) {
	if r.Graph == nil {
		return graph.FromCOO(r.Structure, r.COO, prop)
	}
	g := r.Graph
	if !needsRebuild(g, prop) {
		return g, nil
	}
	s := g.Structure()
	s.E = 0
	s.Mirrored = !g.Directed()
	return graph.FromCOO(s, g.COO(), prop)
}

func needsRebuild(g *graph.Graph, prop graph.Property) bool {
	return prop.Dedup || prop.Randomize || prop.DirectedByDegree || prop.RemoveSingletons ||
		(prop.Sorted && !g.Property().Sorted) ||
		(prop.BuildInEdges && !g.HasInEdges()) ||
		(prop.Undirected && !prop.Directed && g.Directed())
}

// All returns one parser for every supported format, binary first.
func All() []Parser {
	return []Parser{
		&Binary{},
		&Market{},
		&Dimacs9{},
		&Dimacs10{},
		&Snap{},
		&Konect{},
		&NetRepo{},
		&JSON{},
	}
}

// Types returns the identifiers of the parsers in [All].
func Types() []string {
	parsers := All()
	types := make([]string, len(parsers))
	for i, p := range parsers {
		types[i] = p.Type()
	}
	return types
}

// Lookup returns the parser whose Type is typ.
func Lookup(typ string) (Parser, error) {
	for _, p := range All() {
		if p.Type() == typ {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown format %q (want one of %s)", typ, strings.Join(Types(), ", "))
}

// Detect finds the parser for the file at path. A file that starts with the
// binary snapshot magic is always binary; otherwise the first parser whose
// Supports accepts the base name wins. With no parsers given, [All] is used.
func Detect(path string, parsers ...Parser) (Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	defer f.Close()

	head := make([]byte, len(pkgio.Magic))
	n, _ := io.ReadFull(f, head)
	return detect(filepath.Base(path), head[:n], parsers)
}

func detect(name string, head []byte, parsers []Parser) (Parser, error) {
	if len(parsers) == 0 {
		parsers = All()
	}
	if pkgio.HasMagic(head) {
		for _, p := range parsers {
			if p.Type() == BinaryType {
				return p, nil
			}
		}
	}
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported graph file: %s", name)
}

// Load reads the graph file at path with the matching parser and builds it
// with prop. A missing or unreadable file is an [errors.IOError]; a rejected
// file is an [errors.ParseError] or [errors.StructureError].
func Load(path string, prop graph.Property, parsers ...Parser) (*graph.Graph, error) {
	res, err := ParseFile(path, prop, parsers...)
	if err != nil {
		return nil, err
	}
	return res.Build(prop)
}

// ParseFile opens path, detects its format and parses it without building.
func ParseFile(path string, prop graph.Property, parsers ...Parser) (*Result, error) {
	f, br, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head, err := br.Peek(len(pkgio.Magic))
	if err != nil && err != io.EOF {
		return nil, errors.NewIOError("read", path, err)
	}
	p, err := detect(filepath.Base(path), head, parsers)
	if err != nil {
		return nil, err
	}
	return p.Parse(br, prop)
}

// LoadWith reads the file at path with p regardless of its name, and builds
// it with prop.
func LoadWith(path string, p Parser, prop graph.Property) (*graph.Graph, error) {
	f, br, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := p.Parse(br, prop)
	if err != nil {
		return nil, err
	}
	return res.Build(prop)
}

func open(path string) (*os.File, *bufio.Reader, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewIOError("open", path, err)
	}
	return f, bufio.NewReaderSize(f, 1<<16), nil
}
