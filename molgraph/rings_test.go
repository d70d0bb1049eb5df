package molgraph

import "testing"

func TestSSSRAcyclicGraphHasNoRings(t *testing.T) {
	g := New(false)
	a0 := g.AddAtom(NewAtom(ElemC))
	a1 := g.AddAtom(NewAtom(ElemC))
	a2 := g.AddAtom(NewAtom(ElemC))
	g.AddBond(Bond{Beg: a0, End: a1, Order: BondSingle})
	g.AddBond(Bond{Beg: a1, End: a2, Order: BondSingle})

	if rings := g.SSSR(); len(rings) != 0 {
		t.Fatalf("expected no rings in an acyclic graph, got %d", len(rings))
	}
}

func TestSSSRSingleSixRing(t *testing.T) {
	g := New(false)
	idx := make([]int, 6)
	for i := range idx {
		idx[i] = g.AddAtom(NewAtom(ElemC))
	}
	for i := 0; i < 6; i++ {
		g.AddBond(Bond{Beg: idx[i], End: idx[(i+1)%6], Order: BondAromatic})
	}

	rings := g.SSSR()
	if len(rings) != 1 {
		t.Fatalf("expected exactly one ring, got %d", len(rings))
	}
	if len(rings[0].Atoms) != 6 {
		t.Fatalf("expected a 6-membered ring, got %d atoms", len(rings[0].Atoms))
	}
	if len(rings[0].Bonds) != 6 {
		t.Fatalf("expected 6 ring bonds, got %d", len(rings[0].Bonds))
	}
}

func TestSSSRFusedBicyclic(t *testing.T) {
	// Naphthalene-shaped skeleton: two fused six-rings sharing one bond.
	g := New(false)
	idx := make([]int, 10)
	for i := range idx {
		idx[i] = g.AddAtom(NewAtom(ElemC))
	}
	ringA := []int{0, 1, 2, 3, 4, 5}
	ringB := []int{4, 5, 6, 7, 8, 9}
	addRing := func(ring []int) {
		for i := 0; i < len(ring); i++ {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if g.FindBond(a, b) == -1 {
				g.AddBond(Bond{Beg: a, End: b, Order: BondAromatic})
			}
		}
	}
	addRing(ringA)
	addRing(ringB)

	rings := g.SSSR()
	if len(rings) != 2 {
		t.Fatalf("expected 2 fundamental rings in a fused bicyclic system, got %d", len(rings))
	}
}

func TestRingBondAndAtomIndices(t *testing.T) {
	g := New(false)
	idx := make([]int, 3)
	for i := range idx {
		idx[i] = g.AddAtom(NewAtom(ElemC))
	}
	for i := 0; i < 3; i++ {
		g.AddBond(Bond{Beg: idx[i], End: idx[(i+1)%3], Order: BondSingle})
	}
	rings := g.SSSR()
	atomSet := RingAtomIndices(rings)
	bondSet := RingBondIndices(rings)
	for _, a := range idx {
		if !atomSet[a] {
			t.Fatalf("atom %d expected to be marked as a ring atom", a)
		}
	}
	if len(bondSet) != 3 {
		t.Fatalf("expected 3 ring bonds marked, got %d", len(bondSet))
	}
}
