package smiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-smiles/molgraph"
)

func TestCalcStereocentersTetrahedralCarbon(t *testing.T) {
	// [C@](F)(Cl)(Br)I: four explicit neighbors, no implicit-H slot.
	g := loadMoleculeString(t, "[C@](F)(Cl)(Br)I")
	require.True(t, g.Stereocenters.Exists(0))
	c, ok := g.Stereocenters.Get(0)
	require.True(t, ok)
	require.Equal(t, molgraph.StereoAbs, c.Type)
	for _, n := range c.Pyramid {
		require.NotEqual(t, -1, n, "a fully-substituted stereocenter should have no implicit-H slot")
	}
}

func TestCalcStereocentersImplicitHydrogenSlot(t *testing.T) {
	// [C@H](F)(Cl)Br: three explicit neighbors plus an implicit H.
	g := loadMoleculeString(t, "[C@H](F)(Cl)Br")
	require.True(t, g.Stereocenters.Exists(0))
	c, _ := g.Stereocenters.Get(0)
	hSlots := 0
	for _, n := range c.Pyramid {
		if n == -1 {
			hSlots++
		}
	}
	require.Equal(t, 1, hSlots, "a three-substituent stereocenter should carry exactly one implicit-H slot")
}

func TestCalcStereocentersTooManyNeighborsFails(t *testing.T) {
	// [C@](F)(Cl)(Br)(I)N: five explicit neighbors overflow the four
	// pyramid slots a chiral atom can have.
	g := molgraph.New(false)
	err := LoadMolecule(NewStringScanner("[C@](F)(Cl)(Br)(I)N"), g, LoaderOptions{})
	require.Error(t, err)

	g2 := molgraph.New(false)
	err2 := LoadMolecule(NewStringScanner("[C@](F)(Cl)(Br)(I)N"), g2, LoaderOptions{IgnoreStereochemistryErrors: true})
	require.NoError(t, err2)
	require.False(t, g2.Stereocenters.Exists(0))
}

func TestCalcStereocentersIgnoreErrorsOption(t *testing.T) {
	// A chiral marker on an atom with fewer than 3 neighbors cannot resolve
	// four pyramid slots; this must fail unless explicitly ignored.
	g := molgraph.New(false)
	err := LoadMolecule(NewStringScanner("[C@H](F)Cl"), g, LoaderOptions{})
	require.Error(t, err)

	g2 := molgraph.New(false)
	err2 := LoadMolecule(NewStringScanner("[C@H](F)Cl"), g2, LoaderOptions{IgnoreStereochemistryErrors: true})
	require.NoError(t, err2)
	require.False(t, g2.Stereocenters.Exists(0))
}
