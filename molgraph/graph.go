// Package molgraph provides the destination molecular-graph data structure
// the SMILES/SMARTS loader in package smiles mutates while parsing. It plays
// the role spec.md §1 calls "the underlying molecular-graph data structure"
// and "the periodic-table service": both are treated as external
// collaborators by the core spec, so this package exists to give the loader
// something concrete to call, grounded on the teacher's native (non-CGO)
// src/molecule.go Atom/Bond/Vertex/Molecule types.
//
// coding=utf-8
// @Project : smilesloader
// @File    : graph.go
package molgraph

import "fmt"

// Graph is a molecule or query-molecule graph: atoms, bonds, and the
// auxiliary stores (stereocenters, cis/trans parities, S-groups, R-groups,
// attachment points) the loader's post-processing passes populate.
type Graph struct {
	Atoms []Atom
	Bonds []Bond

	adjacency [][]int // per-atom list of incident bond indices, insertion order

	IsQuery bool
	Name    string
	LoadID  string

	Stereocenters *StereocenterStore
	CisTrans      *CisTransStore
	SGroups       *SGroupSet

	// RGroups maps an R-group number to the atom indices of R-sites
	// allowed to be substituted by it.
	RGroups map[int][]int
	// RSiteAttachmentOrder maps an R-site atom index to the order
	// attachment points were listed for it.
	RSiteAttachmentOrder map[int][]int
	// AttachmentPoints maps an atom index to the attachment-point numbers
	// recorded on it (from `_AP<n>` tail labels).
	AttachmentPoints map[int][]int

	HighlightedAtoms []bool
	HighlightedBonds []bool
}

// New returns an empty, ready-to-populate graph.
func New(isQuery bool) *Graph {
	return &Graph{
		IsQuery:              isQuery,
		Stereocenters:        newStereocenterStore(),
		CisTrans:             newCisTransStore(),
		SGroups:              newSGroupSet(),
		RGroups:              make(map[int][]int),
		RSiteAttachmentOrder: make(map[int][]int),
		AttachmentPoints:     make(map[int][]int),
	}
}

// AddAtom appends a new atom and returns its index.
func (g *Graph) AddAtom(a Atom) int {
	idx := len(g.Atoms)
	g.Atoms = append(g.Atoms, a)
	g.adjacency = append(g.adjacency, nil)
	for len(g.HighlightedAtoms) < len(g.Atoms) {
		g.HighlightedAtoms = append(g.HighlightedAtoms, false)
	}
	return idx
}

// AddBond appends a new bond and returns its index.
func (g *Graph) AddBond(b Bond) int {
	idx := len(g.Bonds)
	g.Bonds = append(g.Bonds, b)
	g.adjacency[b.Beg] = append(g.adjacency[b.Beg], idx)
	if b.End >= 0 {
		g.adjacency[b.End] = append(g.adjacency[b.End], idx)
	}
	for len(g.HighlightedBonds) < len(g.Bonds) {
		g.HighlightedBonds = append(g.HighlightedBonds, false)
	}
	return idx
}

// SetBondEnd fills in a pending bond's End atom once a ring closes or a
// chain continues; it also wires the adjacency entry that AddBond could not
// make while End was still unknown (spec.md §3: "end may be -1 until a
// pending ring closes").
func (g *Graph) SetBondEnd(bondIdx, end int) {
	g.Bonds[bondIdx].End = end
	g.adjacency[end] = append(g.adjacency[end], bondIdx)
}

// NeighborsOf returns the atom indices adjacent to atomIdx, in the order
// their bonds were added.
func (g *Graph) NeighborsOf(atomIdx int) []int {
	edges := g.adjacency[atomIdx]
	out := make([]int, 0, len(edges))
	for _, ei := range edges {
		out = append(out, g.otherEnd(ei, atomIdx))
	}
	return out
}

// Degree returns the number of bonds incident to atomIdx.
func (g *Graph) Degree(atomIdx int) int {
	return len(g.adjacency[atomIdx])
}

// EdgesOf returns the bond indices incident to atomIdx.
func (g *Graph) EdgesOf(atomIdx int) []int {
	return g.adjacency[atomIdx]
}

func (g *Graph) otherEnd(bondIdx, atomIdx int) int {
	b := g.Bonds[bondIdx]
	if b.Beg == atomIdx {
		return b.End
	}
	return b.Beg
}

// FindBond returns the index of the bond between a and b, or -1.
func (g *Graph) FindBond(a, b int) int {
	for _, ei := range g.adjacency[a] {
		if g.otherEnd(ei, a) == b {
			return ei
		}
	}
	return -1
}

// RemoveAtom deletes an atom and every bond incident to it, compacting atom
// and bond indices and returning the old->new atom index mapping (-1 for
// the removed atom). Used by the extended-tail reader's `_AP<n>` handling
// (spec.md §4.4), which removes the placeholder atom after recording
// attachment points on its neighbors.
func (g *Graph) RemoveAtom(atomIdx int) []int {
	mapping := make([]int, len(g.Atoms))
	for i := range mapping {
		mapping[i] = i
	}
	mapping[atomIdx] = -1

	keepBond := make([]bool, len(g.Bonds))
	for i, b := range g.Bonds {
		keepBond[i] = b.Beg != atomIdx && b.End != atomIdx
	}

	newAtoms := make([]Atom, 0, len(g.Atoms)-1)
	for i, a := range g.Atoms {
		if i == atomIdx {
			continue
		}
		mapping[i] = len(newAtoms)
		newAtoms = append(newAtoms, a)
	}

	newBonds := make([]Bond, 0, len(g.Bonds))
	for i, b := range g.Bonds {
		if !keepBond[i] {
			continue
		}
		b.Beg = mapping[b.Beg]
		b.End = mapping[b.End]
		newBonds = append(newBonds, b)
	}

	g.Atoms = newAtoms
	g.Bonds = newBonds
	g.rebuildAdjacency()
	g.remapAuxiliaryIndices(mapping)
	return mapping
}

func (g *Graph) rebuildAdjacency() {
	g.adjacency = make([][]int, len(g.Atoms))
	for i, b := range g.Bonds {
		g.adjacency[b.Beg] = append(g.adjacency[b.Beg], i)
		if b.End != b.Beg {
			g.adjacency[b.End] = append(g.adjacency[b.End], i)
		}
	}
}

func (g *Graph) remapAuxiliaryIndices(mapping []int) {
	remapSlice := func(ids []int) []int {
		out := ids[:0]
		for _, id := range ids {
			if id < len(mapping) && mapping[id] >= 0 {
				out = append(out, mapping[id])
			}
		}
		return out
	}
	for n, ids := range g.RGroups {
		g.RGroups[n] = remapSlice(ids)
	}
	remapped := make(map[int][]int, len(g.AttachmentPoints))
	for atomIdx, nums := range g.AttachmentPoints {
		if atomIdx < len(mapping) && mapping[atomIdx] >= 0 {
			remapped[mapping[atomIdx]] = nums
		}
	}
	g.AttachmentPoints = remapped
}

// AllowRGroupOnRSite records that R-group rgroupNum may be substituted at
// atomIdx, the `allowRGroupOnRSite` molecule-contract method of spec.md §6.
func (g *Graph) AllowRGroupOnRSite(atomIdx, rgroupNum int) {
	g.RGroups[rgroupNum] = append(g.RGroups[rgroupNum], atomIdx)
}

// SetRSiteAttachmentOrder records the order attachment points were listed
// for an R-site atom.
func (g *Graph) SetRSiteAttachmentOrder(atomIdx int, order []int) {
	g.RSiteAttachmentOrder[atomIdx] = order
}

// AddAttachmentPoint records attachment-point number apNum on atomIdx.
func (g *Graph) AddAttachmentPoint(apNum, atomIdx int) {
	g.AttachmentPoints[atomIdx] = append(g.AttachmentPoints[atomIdx], apNum)
}

// HighlightAtom marks an atom as highlighted (`ha:` tail segment).
func (g *Graph) HighlightAtom(atomIdx int) {
	for len(g.HighlightedAtoms) <= atomIdx {
		g.HighlightedAtoms = append(g.HighlightedAtoms, false)
	}
	g.HighlightedAtoms[atomIdx] = true
}

// HighlightBond marks a bond as highlighted (`hb:` tail segment).
func (g *Graph) HighlightBond(bondIdx int) {
	for len(g.HighlightedBonds) <= bondIdx {
		g.HighlightedBonds = append(g.HighlightedBonds, false)
	}
	g.HighlightedBonds[bondIdx] = true
}

// MergeSubgraph appends a copy of src's atoms and bonds to g and returns the
// src-atom-index -> g-atom-index mapping. Used by the polymer finalizer
// (spec.md §4.8) to materialize literal repeat copies of an S-group.
func (g *Graph) MergeSubgraph(src *Graph) []int {
	mapping := make([]int, len(src.Atoms))
	for i, a := range src.Atoms {
		mapping[i] = g.AddAtom(a)
	}
	for _, b := range src.Bonds {
		nb := b
		nb.Beg = mapping[b.Beg]
		nb.End = mapping[b.End]
		g.AddBond(nb)
	}
	return mapping
}

// Submolecule extracts the induced subgraph over atomIdxs (in the given
// order) into a new Graph, returning the src-index -> new-index mapping
// (entries for atoms outside atomIdxs are -1).
func (g *Graph) Submolecule(atomIdxs []int) (*Graph, []int) {
	mapping := make([]int, len(g.Atoms))
	for i := range mapping {
		mapping[i] = -1
	}
	sub := New(g.IsQuery)
	for _, idx := range atomIdxs {
		mapping[idx] = sub.AddAtom(g.Atoms[idx])
	}
	for _, b := range g.Bonds {
		if mapping[b.Beg] >= 0 && mapping[b.End] >= 0 {
			nb := b
			nb.Beg = mapping[b.Beg]
			nb.End = mapping[b.End]
			sub.AddBond(nb)
		}
	}
	return sub, mapping
}

// GetAtomDescription renders an atom the way the teacher's
// src/molecule.go GetAtomDescription does, for debugging and test output.
func (g *Graph) GetAtomDescription(idx int) string {
	a := g.Atoms[idx]
	s := ""
	if a.Isotope != 0 {
		s += fmt.Sprintf("%d", a.Isotope)
	}
	if a.IsPseudo() {
		s += a.PseudoAtomValue
	} else {
		s += SymbolFromElement(a.Number)
	}
	switch {
	case a.Charge == 1:
		s += "+"
	case a.Charge > 1:
		s += fmt.Sprintf("+%d", a.Charge)
	case a.Charge == -1:
		s += "-"
	case a.Charge < -1:
		s += fmt.Sprintf("%d", a.Charge)
	}
	return s
}
