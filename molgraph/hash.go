// Package molgraph coding=utf-8
// @Project : smilesloader
// @File    : hash.go
package molgraph

import (
	"fmt"
	"sort"
	"strings"

	"lukechampine.com/blake3"
)

// Hash returns a content hash of the graph's atoms and bonds; the
// smilesload CLI prints it under its -hash flag. Grounded on the seqhash
// pattern in bebop-poly, which hashes a canonical string form of a sequence with blake3 rather than rolling its
// own digest.
func (g *Graph) Hash() string {
	var sb strings.Builder
	for _, a := range g.Atoms {
		fmt.Fprintf(&sb, "a:%d,%d,%d,%d,%t;", a.Number, a.Isotope, a.Charge, a.Radical, a.Aromatic)
	}
	type edgeKey struct {
		beg, end, order int
	}
	edges := make([]edgeKey, 0, len(g.Bonds))
	for _, b := range g.Bonds {
		beg, end := b.Beg, b.End
		if beg > end {
			beg, end = end, beg
		}
		edges = append(edges, edgeKey{beg, end, b.Order})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].beg != edges[j].beg {
			return edges[i].beg < edges[j].beg
		}
		if edges[i].end != edges[j].end {
			return edges[i].end < edges[j].end
		}
		return edges[i].order < edges[j].order
	})
	for _, e := range edges {
		fmt.Fprintf(&sb, "b:%d,%d,%d;", e.beg, e.end, e.order)
	}
	sum := blake3.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%x", sum)
}
