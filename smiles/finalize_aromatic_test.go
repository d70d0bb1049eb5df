package smiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-smiles/molgraph"
)

func sixMemberedRing(aromatic bool, bondOrder int) (*molgraph.Graph, []int) {
	g := molgraph.New(false)
	idx := make([]int, 6)
	for i := 0; i < 6; i++ {
		a := molgraph.NewAtom(molgraph.ElemC)
		a.Aromatic = aromatic
		idx[i] = g.AddAtom(a)
	}
	for i := 0; i < 6; i++ {
		g.AddBond(molgraph.Bond{Beg: idx[i], End: idx[(i+1)%6], Order: bondOrder})
	}
	return g, idx
}

func TestMarkAromaticBondsResolvesEmptyToAromatic(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), false, false, LoaderOptions{})
	g, _ := sixMemberedRing(true, molgraph.BondEmpty)
	l.markAromaticBonds(g)
	for i, b := range g.Bonds {
		require.Equal(t, molgraph.BondAromatic, b.Order, "bond %d should resolve aromatic", i)
	}
}

func TestMarkAromaticBondsLeavesNonAromaticRingSingle(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), false, false, LoaderOptions{})
	g, _ := sixMemberedRing(false, molgraph.BondEmpty)
	l.markAromaticBonds(g)
	for i, b := range g.Bonds {
		require.Equal(t, molgraph.BondSingle, b.Order, "bond %d in a non-aromatic ring should fall back to single", i)
	}
}

func TestRingQualifiesAromaticRejectsMixedRing(t *testing.T) {
	g, idx := sixMemberedRing(true, molgraph.BondAromatic)
	a := g.Atoms[idx[0]]
	a.Aromatic = false
	g.Atoms[idx[0]] = a
	ring := molgraph.Ring{Atoms: idx, Bonds: []int{0, 1, 2, 3, 4, 5}}
	require.False(t, ringQualifiesAromatic(g, ring))
}
