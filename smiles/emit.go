// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : emit.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

// emit materializes the parse-intermediate atom/bond lists into the
// destination graph, equivalent to the original's _loadParsedMolecule.
func (l *loader) emit(g *molgraph.Graph) error {
	g.IsQuery = l.query

	for i, ad := range l.atoms {
		a := molgraph.NewAtom(ad.label)
		a.Isotope = ad.isotope
		a.Charge = ad.charge
		a.ImplicitH = ad.hydrogens
		a.Aromatic = ad.aromatic
		a.Chirality = ad.chirality
		a.AAM = ad.aam
		a.IgnorableAAM = ad.ignorableAAM
		a.Brackets = ad.brackets
		a.StarAtom = ad.starAtom
		a.StartsPolymer = ad.startsPolymer
		a.EndsPolymer = ad.endsPolymer
		a.PolymerIndex = ad.polymerIndex
		a.QueryExpr = ad.queryExpr

		// The `*` + atom-map convention: outside RSMILES mode a star atom
		// carrying an AAM number becomes an R-site labeled by that number
		// (spec.md §9 design note); inside RSMILES mode the map number is
		// preserved verbatim on AAM instead (SPEC_FULL §5 RSMILES nuance).
		rsite := ad.starAtom && ad.aam > 0 && !l.opts.InsideRSMILES
		if rsite {
			a.Number = molgraph.ElemRSite
			a.RGroupNumber = ad.aam
			a.AAM = 0
		}

		idx := g.AddAtom(a)
		if idx != i {
			return newSemanticError(0, "atom index mismatch during emit")
		}
		if rsite {
			g.AllowRGroupOnRSite(idx, ad.aam)
		}
		if l.opts.ReactionAtomMapping != nil {
			*l.opts.ReactionAtomMapping = append(*l.opts.ReactionAtomMapping, ad.aam)
		}
		if l.opts.IgnorableAAM != nil {
			*l.opts.IgnorableAAM = append(*l.opts.IgnorableAAM, ad.ignorableAAM)
		}
	}

	for _, bd := range l.bonds {
		if bd.end < 0 {
			return newSyntaxError(0, "bond from atom %d never resolved an end atom", bd.beg)
		}
		b := molgraph.Bond{
			Beg:      bd.beg,
			End:      bd.end,
			Order:    bd.order,
			Dir:      bd.dir,
			Topology: bd.topology,
		}
		b.QueryExpr = bd.queryExpr
		g.AddBond(b)
	}
	return nil
}
