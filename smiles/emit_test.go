package smiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-smiles/molgraph"
)

func TestEmitStarWithAAMBecomesRSite(t *testing.T) {
	g := molgraph.New(false)
	require.NoError(t, LoadMolecule(NewStringScanner("[*:5]"), g, LoaderOptions{}))
	require.True(t, g.Atoms[0].IsRSite())
	require.Equal(t, 5, g.Atoms[0].RGroupNumber)
}

func TestEmitStarWithAAMPreservedInsideRSMILES(t *testing.T) {
	g := molgraph.New(false)
	require.NoError(t, LoadMolecule(NewStringScanner("[*:5]"), g, LoaderOptions{InsideRSMILES: true}))
	require.False(t, g.Atoms[0].IsRSite())
	require.Equal(t, 5, g.Atoms[0].AAM)
}

func TestEmitReactionAtomMappingCollectsAAMs(t *testing.T) {
	g := molgraph.New(false)
	var mapping []int
	require.NoError(t, LoadMolecule(NewStringScanner("[CH4:1].[OH2:2]"), g, LoaderOptions{ReactionAtomMapping: &mapping}))
	require.Equal(t, []int{1, 2}, mapping)
}

func TestEmitBondNeverClosedFails(t *testing.T) {
	l := newLoaderState(NewStringScanner(""), false, false, LoaderOptions{})
	l.atoms = append(l.atoms, newAtomDesc())
	l.bonds = append(l.bonds, bondDesc{beg: 0, end: -1, order: molgraph.BondSingle})
	g := molgraph.New(false)
	err := l.emit(g)
	require.Error(t, err)
}
