// ShapePack: a 2D shape packing engine
//
// Packs circles, rectangles, equilateral triangles and regular polygons
// into a bounded rectangular area with zero pairwise overlap, using a
// grid-accelerated outward spiral search.
//
// Build:
//   go build -o shapepack ./cmd/shapepack

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
