// Package ingest loads property-graph documents from JSON.
//
// A document has two top-level fields, "nodes" and "edges". Records missing
// required fields are not rejected here: they are carried through and
// dropped during canonicalization, mirroring permissive ingestion of
// heterogeneous external data.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// Document is the raw property-graph input.
type Document struct {
	Nodes []graph.NodeRecord `json:"nodes"`
	Edges []graph.EdgeRecord `json:"edges"`
}

// Parse decodes a property-graph document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode property graph: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and decodes the document at path. A missing file is a
// fatal error surfaced before any graph construction begins.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input %s: %w", path, err)
	}
	return doc, nil
}
