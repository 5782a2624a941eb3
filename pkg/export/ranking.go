// Package export builds the sorted tabular views over the analysis
// results and writes them as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/dd0wney/cluso-graphrank/pkg/algorithms"
	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// DecompositionRow is one line of the onion-decomposition export.
type DecompositionRow struct {
	NodeID string
	Label  string
	Core   int
	Layer  int
	Degree int
}

// CommunityRow is one line of the community export.
type CommunityRow struct {
	NodeID    string
	Label     string
	Community int
}

// DecompositionRows builds rows for every node of g, sorted by layer
// descending, then degree descending, then node id ascending so the
// output is stable across runs.
func DecompositionRows(g *graph.Graph, cores *algorithms.CoreAssignment) []DecompositionRow {
	rows := make([]DecompositionRow, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		rows = append(rows, DecompositionRow{
			NodeID: id,
			Label:  g.Label(id),
			Core:   cores.Core[id],
			Layer:  cores.Layer[id],
			Degree: g.Degree(id),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Layer != rows[j].Layer {
			return rows[i].Layer > rows[j].Layer
		}
		if rows[i].Degree != rows[j].Degree {
			return rows[i].Degree > rows[j].Degree
		}
		return rows[i].NodeID < rows[j].NodeID
	})
	return rows
}

// CommunityRows builds rows for every node of g, sorted by community id
// ascending, then label ascending (case-sensitive), then node id ascending.
func CommunityRows(g *graph.Graph, communities *algorithms.CommunityAssignment) []CommunityRow {
	rows := make([]CommunityRow, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		rows = append(rows, CommunityRow{
			NodeID:    id,
			Label:     g.Label(id),
			Community: communities.Communities[id],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Community != rows[j].Community {
			return rows[i].Community < rows[j].Community
		}
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].NodeID < rows[j].NodeID
	})
	return rows
}

// WriteDecompositionCSV writes rows with a header to w.
func WriteDecompositionCSV(w io.Writer, rows []DecompositionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"node_id", "label", "core", "layer", "degree"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.NodeID,
			r.Label,
			strconv.Itoa(r.Core),
			strconv.Itoa(r.Layer),
			strconv.Itoa(r.Degree),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.NodeID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCommunityCSV writes rows with a header to w.
func WriteCommunityCSV(w io.Writer, rows []CommunityRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"node_id", "label", "community"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.NodeID, r.Label, strconv.Itoa(r.Community)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.NodeID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the result of write to path, creating or truncating it.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
