package smiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-smiles/molgraph"
)

func TestComputeImplicitHMethaneCarbon(t *testing.T) {
	g := molgraph.New(false)
	c := g.AddAtom(molgraph.NewAtom(molgraph.ElemC))
	require.Equal(t, 4, computeImplicitH(g, c))
}

func TestComputeImplicitHSaturatesAtKnownValence(t *testing.T) {
	g := molgraph.New(false)
	c := g.AddAtom(molgraph.NewAtom(molgraph.ElemC))
	n := g.AddAtom(molgraph.NewAtom(molgraph.ElemN))
	g.AddBond(molgraph.Bond{Beg: c, End: n, Order: molgraph.BondSingle})
	require.Equal(t, 3, computeImplicitH(g, c))
}

func TestComputeImplicitHCationNitrogen(t *testing.T) {
	g := molgraph.New(false)
	n := g.AddAtom(molgraph.NewAtom(molgraph.ElemN))
	a := g.Atoms[n]
	a.Charge = 1
	g.Atoms[n] = a
	// N+ with no bonds: adjusted = 0 - 1 = -1, which needs 4 H to reach
	// the first valence of 3 (3 - (-1) = 4), matching ammonium's NH4+.
	require.Equal(t, 4, computeImplicitH(g, n))
}

func TestComputeImplicitHNonOrganicElementReturnsZero(t *testing.T) {
	g := molgraph.New(false)
	fe, _ := molgraph.ElementFromSymbol("Fe")
	idx := g.AddAtom(molgraph.NewAtom(fe))
	require.Equal(t, 0, computeImplicitH(g, idx))
}

func TestSetRadicalsAndHCountsSkipsBracketedAtoms(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), false, false, LoaderOptions{})
	g := molgraph.New(false)
	idx := g.AddAtom(molgraph.NewAtom(molgraph.ElemC))
	a := g.Atoms[idx]
	a.Brackets = true
	a.ImplicitH = -1
	g.Atoms[idx] = a
	l.setRadicalsAndHCounts(g)
	require.Equal(t, 0, g.Atoms[idx].ImplicitH)
}

func TestSetRadicalsAndHCountsAromaticCarbonDegreeBelowThree(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), false, false, LoaderOptions{})
	g := molgraph.New(false)
	c1 := g.AddAtom(molgraph.NewAtom(molgraph.ElemC))
	c2 := g.AddAtom(molgraph.NewAtom(molgraph.ElemC))
	a1 := g.Atoms[c1]
	a1.Aromatic = true
	a1.ImplicitH = -1
	g.Atoms[c1] = a1
	a2 := g.Atoms[c2]
	a2.Aromatic = true
	a2.ImplicitH = -1
	g.Atoms[c2] = a2
	g.AddBond(molgraph.Bond{Beg: c1, End: c2, Order: molgraph.BondAromatic})
	l.setRadicalsAndHCounts(g)
	require.Equal(t, 1, g.Atoms[c1].ImplicitH, "aromatic carbon of degree < 3 picks up one implicit H")
}

func TestForbidImplicitHydrogenWrapsUnpinnedExpr(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), true, false, LoaderOptions{})
	g := molgraph.New(true)
	idx := g.AddAtom(molgraph.NewAtom(0))
	a := g.Atoms[idx]
	a.QueryExpr = molgraph.NotAtom(molgraph.LeafAtom(molgraph.AtomPropNumber, molgraph.ElemH, molgraph.ElemH))
	g.Atoms[idx] = a
	l.forbidImplicitHydrogen(g)
	require.Equal(t, molgraph.ExprAnd, g.Atoms[idx].QueryExpr.Op, "wildcard atoms gain an explicit NOT(#1) wrapper")
}

func TestForbidImplicitHydrogenLeavesPinnedElementAlone(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), true, false, LoaderOptions{})
	g := molgraph.New(true)
	idx := g.AddAtom(molgraph.NewAtom(0))
	a := g.Atoms[idx]
	a.QueryExpr = molgraph.LeafAtom(molgraph.AtomPropNumber, molgraph.ElemC, molgraph.ElemC)
	g.Atoms[idx] = a
	l.forbidImplicitHydrogen(g)
	require.Equal(t, molgraph.ExprLeaf, g.Atoms[idx].QueryExpr.Op, "an atom that already pins an element is left untouched")
}
