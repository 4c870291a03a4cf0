package io

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// Magic opens every binary snapshot.
const Magic = "CSRG"

// Version is the snapshot layout version written by [WriteBinary].
const Version uint16 = 1

// BinaryFormat names the binary layout in parse errors.
const BinaryFormat = "binary"

// Header flag bits.
const (
	FlagDirected uint16 = 1 << iota
	FlagInEdges
	FlagSorted
	FlagWeighted
)

// headerSize is magic + version + flags + V + E.
const headerSize = 4 + 2 + 2 + 8 + 8

// chunk bounds the scratch buffer used to encode and decode arrays, and the
// amount allocated ahead of the bytes actually read.
const chunk = 1 << 16

// Header is the fixed-size prefix of a binary snapshot.
type Header struct {
	Version uint16
	Flags   uint16
	V       int64
	E       int64
}

// HasMagic reports whether b starts with the snapshot magic number.
func HasMagic(b []byte) bool { return bytes.HasPrefix(b, []byte(Magic)) }

// WriteBinary encodes g as a binary snapshot and writes it to w.
//
// The layout is little-endian:
//
//	magic      [4]byte   "CSRG"
//	version    uint16    1
//	flags      uint16    bit0 directed, bit1 in-edges, bit2 sorted, bit3 weighted
//	V          int64
//	E          int64
//	outOffsets [V+1]int64
//	outEdges   [E]int32
//	inOffsets  [V+1]int64   only if bit1
//	inEdges    [E]int32     only if bit1
//
// Degrees and the COO list are not stored; [ReadBinary] derives them.
// WriteBinary never modifies g.
func WriteBinary(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)

	hdr := make([]byte, 0, headerSize)
	hdr = append(hdr, Magic...)
	hdr = binary.LittleEndian.AppendUint16(hdr, Version)
	hdr = binary.LittleEndian.AppendUint16(hdr, flagsOf(g))
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(g.V()))
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(g.E()))
	if _, err := bw.Write(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeOffsets(bw, g.OutOffsets()); err != nil {
		return fmt.Errorf("write out-offsets: %w", err)
	}
	if err := writeIDs(bw, g.OutEdges()); err != nil {
		return fmt.Errorf("write out-edges: %w", err)
	}
	if g.HasInEdges() {
		if err := writeOffsets(bw, g.InOffsets()); err != nil {
			return fmt.Errorf("write in-offsets: %w", err)
		}
		if err := writeIDs(bw, g.InEdges()); err != nil {
			return fmt.Errorf("write in-edges: %w", err)
		}
	}
	return bw.Flush()
}

// ExportBinary writes g as a binary snapshot to path.
// The file is replaced atomically; on failure the previous content is kept.
func ExportBinary(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteBinary(g, w) })
}

// ReadBinary decodes a snapshot written by [WriteBinary].
//
// The arrays are loaded as stored, so a reload reproduces every offset and
// edge array bit for bit. A wrong magic number is a ParseError with reason
// [errors.ReasonBadMagic]; a short stream is [errors.ReasonTruncated].
// Arrays that violate a CSR invariant are rejected with a StructureError.
func ReadBinary(r io.Reader) (*graph.Graph, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	outOffsets, err := readOffsets(br, h.V+1)
	if err != nil {
		return nil, truncated("out-offsets", err)
	}
	outEdges, err := readIDs(br, h.E)
	if err != nil {
		return nil, truncated("out-edges", err)
	}
	var inOffsets []graph.EdgeOffset
	var inEdges []graph.VertexID
	if h.Flags&FlagInEdges != 0 {
		if inOffsets, err = readOffsets(br, h.V+1); err != nil {
			return nil, truncated("in-offsets", err)
		}
		if inEdges, err = readIDs(br, h.E); err != nil {
			return nil, truncated("in-edges", err)
		}
	}

	s := graph.Structure{V: h.V, E: h.E, Direction: graph.Undirected, Weighted: h.Flags&FlagWeighted != 0}
	if h.Flags&FlagDirected != 0 {
		s.Direction = graph.Directed
	}
	prop := graph.Property{Sorted: h.Flags&FlagSorted != 0}
	return graph.FromCSR(s, prop, outOffsets, outEdges, inOffsets, inEdges)
}

// ImportBinary reads a binary snapshot from path.
func ImportBinary(path string) (*graph.Graph, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBinary(f)
}

// ReadHeader decodes and checks the fixed-size snapshot prefix.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if n >= len(Magic) && !HasMagic(buf[:n]) {
			return Header{}, errors.NewParseError(BinaryFormat, 0, errors.ReasonBadMagic, "got %q", buf[:len(Magic)])
		}
		return Header{}, errors.NewParseError(BinaryFormat, 0, errors.ReasonTruncated, "header holds %d of %d bytes", n, headerSize)
	}
	if !HasMagic(buf[:]) {
		return Header{}, errors.NewParseError(BinaryFormat, 0, errors.ReasonBadMagic, "got %q", buf[:len(Magic)])
	}

	h := Header{
		Version: binary.LittleEndian.Uint16(buf[4:]),
		Flags:   binary.LittleEndian.Uint16(buf[6:]),
		V:       int64(binary.LittleEndian.Uint64(buf[8:])),
		E:       int64(binary.LittleEndian.Uint64(buf[16:])),
	}
	if h.Version != Version {
		return Header{}, errors.NewParseError(BinaryFormat, 0, errors.ReasonMalformedHeader, "unsupported version %d", h.Version)
	}
	if h.V < 0 || h.V > graph.MaxVertices || h.E < 0 {
		return Header{}, errors.NewParseError(BinaryFormat, 0, errors.ReasonMalformedHeader, "invalid counts V=%d E=%d", h.V, h.E)
	}
	return h, nil
}

func flagsOf(g *graph.Graph) uint16 {
	var f uint16
	if g.Directed() {
		f |= FlagDirected
	}
	if g.HasInEdges() {
		f |= FlagInEdges
	}
	if g.Property().Sorted {
		f |= FlagSorted
	}
	if g.Structure().Weighted {
		f |= FlagWeighted
	}
	return f
}

func truncated(section string, err error) error {
	return errors.NewParseError(BinaryFormat, 0, errors.ReasonTruncated, "%s: %v", section, err)
}

func writeOffsets(w io.Writer, offsets []graph.EdgeOffset) error {
	buf := make([]byte, 0, chunk)
	for _, o := range offsets {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(o))
		if len(buf)+8 > chunk {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	_, err := w.Write(buf)
	return err
}

func writeIDs(w io.Writer, ids []graph.VertexID) error {
	buf := make([]byte, 0, chunk)
	for _, id := range ids {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
		if len(buf)+4 > chunk {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	_, err := w.Write(buf)
	return err
}

// readOffsets reads n little-endian int64 values. The result grows with the
// bytes actually read, so a corrupt count cannot force a huge allocation.
func readOffsets(r io.Reader, n int64) ([]graph.EdgeOffset, error) {
	out := make([]graph.EdgeOffset, 0, min(n, chunk))
	buf := make([]byte, chunk)
	for rem := n; rem > 0; {
		k := min(rem, chunk/8)
		if _, err := io.ReadFull(r, buf[:k*8]); err != nil {
			return nil, err
		}
		for i := int64(0); i < k; i++ {
			out = append(out, graph.EdgeOffset(binary.LittleEndian.Uint64(buf[i*8:])))
		}
		rem -= k
	}
	return out, nil
}

// readIDs reads n little-endian int32 values.
func readIDs(r io.Reader, n int64) ([]graph.VertexID, error) {
	out := make([]graph.VertexID, 0, min(n, chunk))
	buf := make([]byte, chunk)
	for rem := n; rem > 0; {
		k := min(rem, chunk/4)
		if _, err := io.ReadFull(r, buf[:k*4]); err != nil {
			return nil, err
		}
		for i := int64(0); i < k; i++ {
			out = append(out, graph.VertexID(binary.LittleEndian.Uint32(buf[i*4:])))
		}
		rem -= k
	}
	return out, nil
}
