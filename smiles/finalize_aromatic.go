// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : finalize_aromatic.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

// markAromaticBonds implements spec.md §4.5: resolve "empty" bonds to
// AROMATIC or SINGLE using the SSSR basis, run in non-SMARTS mode only.
// Using SSSR (rather than every cycle) avoids labeling an empty bond
// aromatic when it actually lies in an aliphatic ring sharing atoms with an
// aromatic one.
func (l *loader) markAromaticBonds(g *molgraph.Graph) {
	rings := g.SSSR()
	for _, ring := range rings {
		if !ringQualifiesAromatic(g, ring) {
			continue
		}
		hasEmpty := false
		for _, bi := range ring.Bonds {
			if g.Bonds[bi].Order == molgraph.BondEmpty {
				hasEmpty = true
				break
			}
		}
		if !hasEmpty {
			continue
		}
		for _, bi := range ring.Bonds {
			if g.Bonds[bi].Order != molgraph.BondEmpty {
				continue
			}
			b := g.Bonds[bi]
			b.Order = molgraph.BondAromatic
			if g.IsQuery {
				b.QueryExpr = molgraph.AndBond(b.QueryExpr, molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondAromatic))
			}
			g.Bonds[bi] = b
		}
	}
	for i, b := range g.Bonds {
		if b.Order == molgraph.BondEmpty {
			b.Order = molgraph.BondSingle
			g.Bonds[i] = b
		}
	}
}

func ringQualifiesAromatic(g *molgraph.Graph, ring molgraph.Ring) bool {
	for _, ai := range ring.Atoms {
		if !g.Atoms[ai].Aromatic {
			return false
		}
	}
	for _, bi := range ring.Bonds {
		order := g.Bonds[bi].Order
		if order != molgraph.BondAromatic && order != molgraph.BondEmpty {
			return false
		}
	}
	return true
}
