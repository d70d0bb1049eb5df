// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : bond_expr.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

const bondQualifierChars = "-=#:/\\~@!;,&?"

func isBondQualifierChar(c int) bool {
	if c < 0 {
		return false
	}
	for i := 0; i < len(bondQualifierChars); i++ {
		if byte(c) == bondQualifierChars[i] {
			return true
		}
	}
	return false
}

// readBondQualifierRun consumes a (possibly empty) run of bond-qualifier
// characters and parses it per spec.md §4.3, returning a bondDesc with
// beg left unset (the caller fills beg/end) and the raw qualifier string
// (used for ring-closure qualifier comparison).
func (l *loader) readBondQualifierRun() (bondDesc, string, error) {
	pos := l.sc.Pos()
	start := pos
	var raw []byte
	for isBondQualifierChar(l.sc.Peek()) {
		raw = append(raw, byte(l.sc.Read()))
	}
	bd := bondDesc{end: -1}
	if len(raw) == 0 {
		if l.query {
			bd.order = molgraph.BondEmpty
			bd.queryExpr = molgraph.OrBond(
				molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondSingle),
				molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondAromatic),
			)
		} else {
			bd.order = molgraph.BondEmpty
		}
		return bd, "", nil
	}
	expr, err := l.parseBondLogical(string(raw), start, &bd)
	if err != nil {
		return bd, "", err
	}
	bd.queryExpr = expr
	return bd, string(raw), nil
}

func (l *loader) parseBondLogical(content string, basePos int, bd *bondDesc) (*molgraph.BondExpr, error) {
	if hasTopLevel(content, ';') {
		parts := topLevelSplit(content, ';')
		var acc *molgraph.BondExpr
		off := 0
		for _, p := range parts {
			child, err := l.parseBondLogical(p, basePos+off, bd)
			if err != nil {
				return nil, err
			}
			acc = molgraph.AndBond(acc, child)
			off += len(p) + 1
		}
		return acc, nil
	}
	if hasTopLevel(content, ',') {
		parts := topLevelSplit(content, ',')
		var acc *molgraph.BondExpr
		off := 0
		for i, p := range parts {
			child, err := l.parseBondLogical(p, basePos+off, bd)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				acc = child
			} else {
				acc = molgraph.OrBond(acc, child)
			}
			off += len(p) + 1
		}
		return acc, nil
	}
	if hasTopLevel(content, '&') {
		parts := topLevelSplit(content, '&')
		var acc *molgraph.BondExpr
		off := 0
		for _, p := range parts {
			child, err := l.parseBondLogical(p, basePos+off, bd)
			if err != nil {
				return nil, err
			}
			acc = molgraph.AndBond(acc, child)
			off += len(p) + 1
		}
		return acc, nil
	}
	return l.parseBondPrimitives(content, basePos, bd)
}

func (l *loader) parseBondPrimitives(content string, basePos int, bd *bondDesc) (*molgraph.BondExpr, error) {
	sc := &exprScanner{s: content, basePos: basePos}
	var acc *molgraph.BondExpr
	neg := false

	combine := func(leaf *molgraph.BondExpr) {
		if leaf == nil {
			return
		}
		if neg {
			leaf = molgraph.NotBond(leaf)
			neg = false
		}
		acc = molgraph.AndBond(acc, leaf)
	}

	for !sc.eof() {
		c := sc.peek()
		switch c {
		case '!':
			neg = !neg
			sc.i++
		case '-':
			sc.i++
			bd.order = molgraph.BondSingle
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondSingle))
		case '=':
			sc.i++
			bd.order = molgraph.BondDouble
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondDouble))
		case '#':
			sc.i++
			bd.order = molgraph.BondTriple
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondTriple))
		case ':':
			sc.i++
			bd.order = molgraph.BondAromatic
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondAromatic))
		case '/':
			sc.i++
			bd.order = molgraph.BondSingle
			bd.dir = molgraph.BondDirUp
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondSingle))
		case '\\':
			sc.i++
			bd.order = molgraph.BondSingle
			bd.dir = molgraph.BondDirDown
			combine(molgraph.LeafBond(molgraph.BondPropOrder, molgraph.BondSingle))
		case '~':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "~ any-bond primitive only valid in query mode")
			}
			bd.order = molgraph.BondAny
			combine(molgraph.LeafBond(molgraph.BondPropAny, 1))
		case '@':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "@ ring-topology primitive only valid in query mode")
			}
			bd.topology = molgraph.TopologyRing
			combine(molgraph.LeafBond(molgraph.BondPropTopology, molgraph.TopologyRing))
		default:
			return nil, newSemanticError(sc.pos(), "unrecognized bond primitive %q", rune(c))
		}
	}
	return acc, nil
}
