// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : finalize_polymer.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

// handlePolymerRepetition implements spec.md §4.8 for every polymer group
// opened during parsing.
func (l *loader) handlePolymerRepetition(g *molgraph.Graph) error {
	for groupIdx, r := range l.polymerRepetitions {
		if err := materializePolymerGroup(g, groupIdx, r); err != nil {
			return err
		}
	}
	return nil
}

func materializePolymerGroup(g *molgraph.Graph, groupIdx, r int) error {
	var atoms []int
	start, end := -1, -1
	for ai := range g.Atoms {
		a := g.Atoms[ai]
		if a.PolymerIndex != groupIdx {
			continue
		}
		atoms = append(atoms, ai)
		if a.StartsPolymer {
			start = ai
		}
		if a.EndsPolymer {
			end = ai
		}
	}
	if start < 0 || end < 0 {
		return newSemanticError(0, "polymer group %d missing start or end atom", groupIdx)
	}

	atomSet := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		atomSet[a] = true
	}

	var groupBonds []int
	startBond, endBond := -1, -1
	for bi := range g.Bonds {
		b := g.Bonds[bi]
		inBeg, inEnd := atomSet[b.Beg], atomSet[b.End]
		switch {
		case inBeg && inEnd:
			groupBonds = append(groupBonds, bi)
		case inBeg || inEnd:
			switch {
			case b.Beg == start || b.End == start:
				startBond = bi
			case b.Beg == end || b.End == end:
				endBond = bi
			default:
				return newSemanticError(0, "polymer group %d: bond %d straddles the boundary without touching start or end", groupIdx, bi)
			}
		}
	}
	if startBond < 0 && endBond >= 0 {
		start, end = end, start
		startBond, endBond = endBond, startBond
	}

	kind := molgraph.SGroupMultiple
	mult := r
	connectivity := ""
	if r == 0 {
		kind = molgraph.SGroupRepeatingUnit
		mult = 0
		connectivity = "HT"
	}
	sg := &molgraph.SGroup{
		Kind:         kind,
		Atoms:        append([]int(nil), atoms...),
		Bonds:        groupBonds,
		Multiplier:   mult,
		Connectivity: connectivity,
		Brackets:     []molgraph.Bracket{{}, {}},
	}
	g.SGroups.Add(sg)

	switch {
	case kind == molgraph.SGroupMultiple && r >= 2:
		sub, mapping := g.Submolecule(atoms)
		prevEnd := end
		for k := 1; k < r; k++ {
			copyMap := g.MergeSubgraph(sub)
			newStart := copyMap[mapping[start]]
			newEnd := copyMap[mapping[end]]
			g.AddBond(molgraph.Bond{Beg: prevEnd, End: newStart, Order: molgraph.BondSingle})
			prevEnd = newEnd
		}
		if endBond >= 0 {
			b := g.Bonds[endBond]
			if b.Beg == end {
				b.Beg = prevEnd
			} else {
				b.End = prevEnd
			}
			g.Bonds[endBond] = b
		}
	case kind == molgraph.SGroupRepeatingUnit:
		if startBond < 0 {
			idx := addPolymerTerminal(g)
			g.AddBond(molgraph.Bond{Beg: idx, End: start, Order: molgraph.BondSingle})
		}
		if endBond < 0 {
			idx := addPolymerTerminal(g)
			g.AddBond(molgraph.Bond{Beg: end, End: idx, Order: molgraph.BondSingle})
		}
	}
	return nil
}

func addPolymerTerminal(g *molgraph.Graph) int {
	star := molgraph.NewAtom(molgraph.ElemPseudo)
	star.StarAtom = true
	if g.IsQuery {
		star.QueryExpr = &molgraph.AtomExpr{Op: molgraph.ExprLeaf, Prop: molgraph.AtomPropAny}
	}
	return g.AddAtom(star)
}
