// Package lineagecsv writes the per-frame, per-cell lineage table
// (spec.md §6: "one row per (frame, cell) with columns image_name,
// cell_name, x, y, width, length, rotation"), grounded on the
// bufio.Writer + csv.Writer + header-then-rows shape used by the
// phygeo diff commands for their own tree/particle tables.
package lineagecsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/cellanneal/cellanneal/lineage"
)

var header = []string{"image_name", "cell_name", "x", "y", "width", "length", "rotation"}

// Write emits one row per (frame, cell) of l to path, in frame order
// and then cell-name order within a frame (the underlying Frame.Nodes
// map has no stable iteration order, so sorting keeps the output
// reproducible across runs). imageNames must have one entry per frame.
func Write(path string, l *lineage.Lineage, imageNames []string) error {
	if len(imageNames) != l.FrameCount() {
		return fmt.Errorf("lineagecsv: %d image names for %d frames", len(imageNames), l.FrameCount())
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lineagecsv: create %s: %w", path, err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	w := csv.NewWriter(buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("lineagecsv: write header: %w", err)
	}

	for frameIdx := 0; frameIdx < l.FrameCount(); frameIdx++ {
		frame := l.Frame(frameIdx)
		names := make([]string, 0, len(frame.Nodes))
		for name := range frame.Nodes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			c := l.Node(frame.Nodes[name]).Cell
			row := []string{
				imageNames[frameIdx],
				name,
				formatFloat(c.X),
				formatFloat(c.Y),
				formatFloat(c.Width),
				formatFloat(c.Length),
				formatFloat(c.Rotation),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("lineagecsv: write row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("lineagecsv: flush: %w", err)
	}
	return buf.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
