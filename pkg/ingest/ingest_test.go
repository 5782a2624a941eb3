package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParse_FullDocument tests decoding a well-formed property graph
func TestParse_FullDocument(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "A", "label": "Alpha"},
			{"id": "B"}
		],
		"edges": [
			{"source": "A", "target": "B", "property_label": "links_to"}
		]
	}`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(doc.Nodes))
	}
	if doc.Nodes[0].Label != "Alpha" {
		t.Errorf("Expected label Alpha, got %q", doc.Nodes[0].Label)
	}
	if doc.Nodes[1].Label != "" {
		t.Errorf("Expected empty default label, got %q", doc.Nodes[1].Label)
	}
	if len(doc.Edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(doc.Edges))
	}
	if doc.Edges[0].PropertyLabel != "links_to" {
		t.Errorf("Expected property_label carried through, got %q", doc.Edges[0].PropertyLabel)
	}
}

// TestParse_MissingFields tests that malformed records survive decoding;
// canonicalization is responsible for dropping them
func TestParse_MissingFields(t *testing.T) {
	input := `{"nodes": [{"label": "no id"}], "edges": [{"source": "A"}]}`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Nodes[0].ID != "" {
		t.Errorf("Expected empty id, got %q", doc.Nodes[0].ID)
	}
	if doc.Edges[0].Target != "" {
		t.Errorf("Expected empty target, got %q", doc.Edges[0].Target)
	}
}

// TestParse_InvalidJSON tests the decode error path
func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

// TestLoadFile_Missing tests that a missing input is a fatal error
func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Expected error for missing input file")
	}
}

// TestLoadFile_RoundTrip tests loading a document from disk
func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	content := `{"nodes": [{"id": "A"}], "edges": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].ID != "A" {
		t.Errorf("Unexpected document: %+v", doc)
	}
}
