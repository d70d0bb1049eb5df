package smiles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-smiles/molgraph"
)

func TestReadBondQualifierRunEmptyIsImplicit(t *testing.T) {
	l := newLoaderState(NewStringScanner("C"), false, false, LoaderOptions{})
	bd, raw, err := l.readBondQualifierRun()
	require.NoError(t, err)
	require.Equal(t, "", raw)
	require.Equal(t, molgraph.BondEmpty, bd.order)
}

func TestReadBondQualifierRunDouble(t *testing.T) {
	l := newLoaderState(NewStringScanner("="), false, false, LoaderOptions{})
	bd, raw, err := l.readBondQualifierRun()
	require.NoError(t, err)
	require.Equal(t, "=", raw)
	require.Equal(t, molgraph.BondDouble, bd.order)
}

func TestReadBondQualifierRunDirectional(t *testing.T) {
	l := newLoaderState(NewStringScanner("/"), false, false, LoaderOptions{})
	bd, _, err := l.readBondQualifierRun()
	require.NoError(t, err)
	require.Equal(t, molgraph.BondSingle, bd.order)
	require.Equal(t, molgraph.BondDirUp, bd.dir)
}

func TestReadBondQualifierRunNegatedLogical(t *testing.T) {
	l := newLoaderState(NewStringScanner("!-"), true, false, LoaderOptions{})
	bd, _, err := l.readBondQualifierRun()
	require.NoError(t, err)
	require.NotNil(t, bd.queryExpr)
	require.Equal(t, molgraph.ExprNot, bd.queryExpr.Op)
	require.Equal(t, molgraph.BondPropOrder, bd.queryExpr.Children[0].Prop)
}

func TestReadBondQualifierRunAnyBondRequiresQueryMode(t *testing.T) {
	l := newLoaderState(NewStringScanner("~"), false, false, LoaderOptions{})
	_, _, err := l.readBondQualifierRun()
	require.Error(t, err)

	lq := newLoaderState(NewStringScanner("~"), true, false, LoaderOptions{})
	bd, _, err2 := lq.readBondQualifierRun()
	require.NoError(t, err2)
	require.Equal(t, molgraph.BondAny, bd.order)
}

func TestReadBondQualifierRunRingTopology(t *testing.T) {
	l := newLoaderState(NewStringScanner("@"), true, false, LoaderOptions{})
	bd, _, err := l.readBondQualifierRun()
	require.NoError(t, err)
	require.Equal(t, molgraph.TopologyRing, bd.topology)
}
