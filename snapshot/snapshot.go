// Package snapshot persists road networks to a blob store so repeated scans
// of the same region skip the expensive ingest step.
//
// Blob layout: a fixed binary header carrying the format version, the
// compression algorithm and the codec name, followed by one compressed frame
// holding the codec-encoded document. The codec name travels in the header so
// readers do not need configuration to open old snapshots.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/osmcheck/sinkscan/blobstore"
	"github.com/osmcheck/sinkscan/codec"
	"github.com/osmcheck/sinkscan/graph"
	"github.com/osmcheck/sinkscan/tags"
)

var magic = [4]byte{'S', 'N', 'K', 'S'}

const formatVersion = 1

var (
	// ErrBadMagic means the blob is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion means the snapshot was written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")
)

type document struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
	Areas []areaRecord `json:"areas"`
}

type nodeRecord struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags,omitempty"`
}

type edgeRecord struct {
	ID      int64             `json:"id"`
	Start   int64             `json:"start"`
	End     int64             `json:"end"`
	Highway string            `json:"highway,omitempty"`
	Line    [][2]float64      `json:"line,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	TwoWay  bool              `json:"two_way,omitempty"`
}

type areaRecord struct {
	ID   int64             `json:"id"`
	Ring [][2]float64      `json:"ring"`
	Tags map[string]string `json:"tags,omitempty"`
}

type options struct {
	codec       codec.Codec
	compression CompressionType
}

// Option customizes Save.
type Option func(*options)

// WithCodec selects the document codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithCompression selects the payload compression.
func WithCompression(t CompressionType) Option {
	return func(o *options) { o.compression = t }
}

// Save encodes the network and writes it to the store under name.
func Save(ctx context.Context, store blobstore.Store, name string, g *graph.Network, optFns ...Option) error {
	opts := options{codec: codec.Default, compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := opts.codec.Marshal(encode(g))
	if err != nil {
		return fmt.Errorf("snapshot: encode document: %w", err)
	}
	frame, err := compress(payload, opts.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	codecName := opts.codec.Name()
	blob := make([]byte, 0, 4+2+1+len(codecName)+len(frame))
	blob = append(blob, magic[:]...)
	blob = append(blob, formatVersion, byte(opts.compression), byte(len(codecName)))
	blob = append(blob, codecName...)
	blob = append(blob, frame...)

	return store.Put(ctx, name, blob)
}

// Load reads the snapshot named name and rebuilds the network.
func Load(ctx context.Context, store blobstore.Store, name string) (*graph.Network, error) {
	blob, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(blob) < 7 || [4]byte(blob[:4]) != magic {
		return nil, ErrBadMagic
	}
	if blob[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, blob[4])
	}
	compression := CompressionType(blob[5])
	nameLen := int(blob[6])
	if len(blob) < 7+nameLen {
		return nil, errTruncatedFrame
	}
	c, ok := codec.ByName(string(blob[7 : 7+nameLen]))
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown codec %q", blob[7:7+nameLen])
	}

	payload, err := decompress(blob[7+nameLen:], compression)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode document: %w", err)
	}
	return decode(&doc)
}

func encode(g *graph.Network) *document {
	doc := &document{}

	for _, n := range g.Nodes() {
		loc := n.Location()
		doc.Nodes = append(doc.Nodes, nodeRecord{
			ID:   int64(n.ID()),
			Lat:  loc.Lat,
			Lon:  loc.Lon,
			Tags: dropEmpty(n.Tags()),
		})
	}

	for _, e := range g.Edges() {
		// The reverse half of a two-way pair is rebuilt on load.
		if e.Reversed() != nil && e.ID() < 0 {
			continue
		}
		rec := edgeRecord{
			ID:     int64(e.ID()),
			Start:  int64(e.Start().ID()),
			End:    int64(e.End().ID()),
			Line:   encodeLine(e.Line()),
			Tags:   dropEmpty(e.Tags()),
			TwoWay: e.Reversed() != nil,
		}
		if e.Highway() != tags.HighwayUnknown {
			rec.Highway = e.Highway().String()
		}
		doc.Edges = append(doc.Edges, rec)
	}

	for _, a := range g.Areas() {
		doc.Areas = append(doc.Areas, areaRecord{
			ID:   a.ID(),
			Ring: encodeLine(graph.PolyLine(a.Polygon())),
			Tags: dropEmpty(a.Tags()),
		})
	}
	return doc
}

func decode(doc *document) (*graph.Network, error) {
	g := graph.NewNetwork()

	for _, rec := range doc.Nodes {
		if _, err := g.AddNode(graph.NodeID(rec.ID), graph.Point{Lat: rec.Lat, Lon: rec.Lon}, rec.Tags); err != nil {
			return nil, fmt.Errorf("snapshot: node %d: %w", rec.ID, err)
		}
	}

	for _, rec := range doc.Edges {
		highway := tags.HighwayUnknown
		if rec.Highway != "" {
			var err error
			if highway, err = tags.ParseHighwayTag(rec.Highway); err != nil {
				return nil, fmt.Errorf("snapshot: edge %d: %w", rec.ID, err)
			}
		}
		line := decodeLine(rec.Line)

		var err error
		if rec.TwoWay {
			_, err = g.AddTwoWay(graph.EdgeID(rec.ID), graph.NodeID(rec.Start), graph.NodeID(rec.End), highway, line, rec.Tags)
		} else {
			_, err = g.AddEdge(graph.EdgeID(rec.ID), graph.NodeID(rec.Start), graph.NodeID(rec.End), highway, line, rec.Tags)
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot: edge %d: %w", rec.ID, err)
		}
	}

	for _, rec := range doc.Areas {
		ring := graph.Polygon(decodeLine(rec.Ring))
		if _, err := g.AddArea(rec.ID, ring, rec.Tags); err != nil {
			return nil, fmt.Errorf("snapshot: area %d: %w", rec.ID, err)
		}
	}
	return g, nil
}

func encodeLine(l graph.PolyLine) [][2]float64 {
	out := make([][2]float64, len(l))
	for i, p := range l {
		out[i] = [2]float64{p.Lat, p.Lon}
	}
	return out
}

func decodeLine(l [][2]float64) graph.PolyLine {
	out := make(graph.PolyLine, len(l))
	for i, p := range l {
		out[i] = graph.Point{Lat: p[0], Lon: p[1]}
	}
	return out
}

func dropEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}
