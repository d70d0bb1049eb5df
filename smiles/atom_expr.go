// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : atom_expr.go
package smiles

import (
	"strings"

	"github.com/cx-luo/go-smiles/molgraph"
)

// exprScanner is a tiny string-backed scanner used only while parsing the
// captured contents of a bracketed atom/bond expression; it is not the
// public Scanner interface because the logical-split step needs to slice
// and re-scan substrings freely, which the forward-only Scanner contract
// does not support.
type exprScanner struct {
	s      string
	i      int
	basePos int // byte offset of s[0] in the original input, for error reporting
}

func (e *exprScanner) peek() byte {
	if e.i >= len(e.s) {
		return 0
	}
	return e.s[e.i]
}

func (e *exprScanner) at(off int) byte {
	if e.i+off >= len(e.s) {
		return 0
	}
	return e.s[e.i+off]
}

func (e *exprScanner) eof() bool { return e.i >= len(e.s) }

func (e *exprScanner) pos() int { return e.basePos + e.i }

// topLevelSplit returns the substrings of s separated by sep, ignoring any
// sep byte that occurs inside a `$(...)` recursive-fragment block (spec.md
// §4.2 step 1: "text inside $(...) is masked out first").
func topLevelSplit(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '(':
			depth++
			i++
		case depth > 0 && s[i] == '(':
			depth++
		case depth > 0 && s[i] == ')':
			depth--
		case depth == 0 && s[i] == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func hasTopLevel(s string, sep byte) bool {
	return len(topLevelSplit(s, sep)) > 1
}

// readAtomToken reads one atom token: a bracketed expression or a bare
// organic-subset symbol / `*`.
func (l *loader) readAtomToken() (atomDesc, error) {
	if l.sc.Peek() == '[' {
		return l.readBracketedAtom()
	}
	return l.readBareAtom()
}

func (l *loader) readBareAtom() (atomDesc, error) {
	desc := newAtomDesc()
	pos := l.sc.Pos()
	c := l.sc.Peek()
	if c == '*' {
		l.sc.Read()
		desc.starAtom = true
		if l.query {
			desc.queryExpr = molgraph.NotAtom(molgraph.LeafAtom(molgraph.AtomPropNumber, molgraph.ElemH, molgraph.ElemH))
		}
		return desc, nil
	}
	if c >= 'a' && c <= 'z' && isAromaticOrganicLower(byte(c)) {
		l.sc.Read()
		sym := strings.ToUpper(string(rune(c)))
		num, _ := molgraph.ElementFromSymbol(sym)
		desc.label = num
		desc.aromatic = true
		return desc, nil
	}
	if c < 'A' || c > 'Z' {
		return desc, newSyntaxError(pos, "expected atom, got %q", rune(c))
	}
	sym := string(rune(l.sc.Read()))
	// Two-letter organic-subset symbols Br, Cl are recognized bare; all
	// other multi-letter elements must be bracketed (spec.md §4.1).
	if (sym == "B" && l.sc.Peek() == 'r') || (sym == "C" && l.sc.Peek() == 'l') {
		sym += string(rune(l.sc.Read()))
	}
	num, err := molgraph.ElementFromSymbol(sym)
	if err != nil || !molgraph.IsOrganicSubset(num) {
		return desc, newSemanticError(pos, "%q is not an organic-subset element", sym)
	}
	desc.label = num
	return desc, nil
}

// readBracketedAtom parses `[ ... ]`.
func (l *loader) readBracketedAtom() (atomDesc, error) {
	startPos := l.sc.Pos()
	l.sc.Read() // consume '['
	content, err := l.captureBracketContent()
	if err != nil {
		return atomDesc{}, err
	}
	desc := newAtomDesc()
	desc.brackets = true
	firstInBrackets := true
	expr, err := l.parseAtomLogical(content, startPos, &desc, &firstInBrackets)
	if err != nil {
		return desc, err
	}
	desc.queryExpr = expr
	if desc.label == 0 && !l.query && !desc.starAtom {
		return desc, newSemanticError(startPos, "bracketed atom has no element")
	}
	return desc, nil
}

func (l *loader) captureBracketContent() (string, error) {
	var sb strings.Builder
	for {
		c := l.sc.Peek()
		if c == EOF {
			return "", newSyntaxError(l.sc.Pos(), "EOF inside brackets")
		}
		if c == ']' {
			l.sc.Read()
			return sb.String(), nil
		}
		if c == '$' {
			sb.WriteByte('$')
			l.sc.Read()
			if l.sc.Peek() == '(' {
				depth := 0
				for {
					c2 := l.sc.Peek()
					if c2 == EOF {
						return "", newSyntaxError(l.sc.Pos(), "EOF inside $(...)")
					}
					sb.WriteByte(byte(c2))
					l.sc.Read()
					if c2 == '(' {
						depth++
					} else if c2 == ')' {
						depth--
						if depth == 0 {
							break
						}
					}
				}
			}
			continue
		}
		sb.WriteByte(byte(c))
		l.sc.Read()
	}
}

// parseAtomLogical implements spec.md §4.2: the `;`/`,`/`&` logical split,
// then the primitive scan, over a captured bracket-content string.
func (l *loader) parseAtomLogical(content string, basePos int, desc *atomDesc, firstInBrackets *bool) (*molgraph.AtomExpr, error) {
	if hasTopLevel(content, ';') {
		parts := topLevelSplit(content, ';')
		var acc *molgraph.AtomExpr
		off := 0
		for _, p := range parts {
			child, err := l.parseAtomLogical(p, basePos+off, desc, firstInBrackets)
			if err != nil {
				return nil, err
			}
			acc = molgraph.AndAtom(acc, child)
			off += len(p) + 1
		}
		return acc, nil
	}
	if hasTopLevel(content, ',') {
		parts := topLevelSplit(content, ',')
		var acc *molgraph.AtomExpr
		off := 0
		// Each alternative may name its own element; the atom keeps the
		// label of the first one.
		baseLabel := desc.label
		firstLabel := baseLabel
		for i, p := range parts {
			desc.label = baseLabel
			child, err := l.parseAtomLogical(p, basePos+off, desc, firstInBrackets)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				acc = child
				firstLabel = desc.label
			} else {
				acc = molgraph.OrAtom(acc, child)
			}
			off += len(p) + 1
		}
		desc.label = firstLabel
		return acc, nil
	}
	if hasTopLevel(content, '&') {
		parts := topLevelSplit(content, '&')
		var acc *molgraph.AtomExpr
		off := 0
		for _, p := range parts {
			child, err := l.parseAtomLogical(p, basePos+off, desc, firstInBrackets)
			if err != nil {
				return nil, err
			}
			acc = molgraph.AndAtom(acc, child)
			off += len(p) + 1
		}
		return acc, nil
	}
	return l.parseAtomPrimitives(content, basePos, desc, firstInBrackets)
}

func (l *loader) parseAtomPrimitives(content string, basePos int, desc *atomDesc, firstInBrackets *bool) (*molgraph.AtomExpr, error) {
	sc := &exprScanner{s: content, basePos: basePos}
	var acc *molgraph.AtomExpr
	neg := false

	combine := func(leaf *molgraph.AtomExpr) {
		if leaf == nil {
			return
		}
		if neg {
			leaf = molgraph.NotAtom(leaf)
			neg = false
		}
		acc = molgraph.AndAtom(acc, leaf)
	}

	for !sc.eof() {
		c := sc.peek()
		switch {
		case c == '!':
			neg = !neg
			sc.i++
			continue
		case c >= '0' && c <= '9':
			n := sc.readUnsigned()
			if *firstInBrackets {
				desc.isotope = n
				combine(molgraph.LeafAtom(molgraph.AtomPropIsotope, n, n))
			} else {
				// A bare digit after the first primitive is a repeated
				// charge marker ("++") companion count; only charge uses
				// trailing digits elsewhere, so treat stray digits here as
				// isotope too per the original grammar's single isotope slot.
				desc.isotope = n
				combine(molgraph.LeafAtom(molgraph.AtomPropIsotope, n, n))
			}
		case c == 'H':
			sc.i++
			if *firstInBrackets || !isSecondLetterOf("He,Hs,Hf,Ho,Hg", sc.peek()) {
				if sc.peek() == 'e' || sc.peek() == 's' || sc.peek() == 'f' || sc.peek() == 'o' || sc.peek() == 'g' {
					sym := "H" + string(rune(sc.peek()))
					sc.i++
					num, _ := molgraph.ElementFromSymbol(sym)
					desc.label = num
					combine(molgraph.LeafAtom(molgraph.AtomPropNumber, num, num))
				} else if *firstInBrackets {
					desc.label = molgraph.ElemH
					combine(molgraph.LeafAtom(molgraph.AtomPropNumber, molgraph.ElemH, molgraph.ElemH))
				} else {
					h := 1
					if sc.peek() >= '0' && sc.peek() <= '9' {
						h = sc.readUnsigned()
					}
					desc.hydrogens = h
					combine(molgraph.LeafAtom(molgraph.AtomPropTotalH, h, h))
				}
			} else {
				sym := "H" + string(rune(sc.peek()))
				sc.i++
				num, _ := molgraph.ElementFromSymbol(sym)
				desc.label = num
				combine(molgraph.LeafAtom(molgraph.AtomPropNumber, num, num))
			}
			*firstInBrackets = false
		case c == 'h':
			return nil, newSemanticError(sc.pos(), "lowercase 'h' count primitive is not supported")
		case c == 'A' && !isSecondLetterOf("Al,Ar,As,Ag,Au,At,Ac", sc.at(1)):
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "aliphatic primitive only valid in query mode")
			}
			combine(molgraph.LeafAtom(molgraph.AtomPropAliphatic, 1, 1))
			*firstInBrackets = false
		case c == 'a':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "aromatic primitive only valid in query mode")
			}
			desc.aromatic = true
			combine(molgraph.LeafAtom(molgraph.AtomPropAromatic, 1, 1))
			*firstInBrackets = false
		case c == 'R' && !isRElementLetter(sc.at(1)):
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "ring-membership primitive only valid in query mode")
			}
			if sc.peek() >= '0' && sc.peek() <= '9' {
				n := sc.readUnsigned()
				if n == 0 {
					combine(molgraph.LeafAtom(molgraph.AtomPropRingMembership, 0, 0))
				} else {
					combine(molgraph.LeafAtom(molgraph.AtomPropRingMembership, n, n))
				}
			} else {
				combine(molgraph.LeafAtom(molgraph.AtomPropRingMembership, 1, -1))
			}
			*firstInBrackets = false
		case c == 'D':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "substituent-count primitive only valid in query mode")
			}
			n := sc.readUnsignedDefault(1)
			combine(molgraph.LeafAtom(molgraph.AtomPropSubstituents, n, n))
			*firstInBrackets = false
		case c == 'X':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "connectivity primitive only valid in query mode")
			}
			n := sc.readUnsignedDefault(1)
			combine(molgraph.LeafAtom(molgraph.AtomPropConnectivity, n, n))
			*firstInBrackets = false
		case c == 'x':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "ring-bond-count primitive only valid in query mode")
			}
			n := sc.readUnsignedDefault(1)
			combine(molgraph.LeafAtom(molgraph.AtomPropRingBondCount, n, n))
			*firstInBrackets = false
		case c == 'r':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "ring-size primitive only valid in query mode")
			}
			n := sc.readUnsignedDefault(0)
			combine(molgraph.LeafAtom(molgraph.AtomPropRingSize, n, n))
			*firstInBrackets = false
		case c == 'v':
			sc.i++
			if !l.query {
				return nil, newSemanticError(sc.pos(), "total-bond-order primitive only valid in query mode")
			}
			n := sc.readUnsignedDefault(1)
			combine(molgraph.LeafAtom(molgraph.AtomPropTotalBondOrder, n, n))
			*firstInBrackets = false
		case c == '*':
			sc.i++
			desc.starAtom = true
			combine(molgraph.NotAtom(molgraph.LeafAtom(molgraph.AtomPropNumber, molgraph.ElemH, molgraph.ElemH)))
			*firstInBrackets = false
		case c == '#':
			sc.i++
			if !l.smartsMode {
				return nil, newSemanticError(sc.pos(), "#<n> atomic-number primitive is SMARTS-only")
			}
			n := sc.readUnsigned()
			if desc.label != 0 {
				return nil, newSemanticError(sc.pos(), "duplicate element assignment")
			}
			desc.label = n
			combine(molgraph.LeafAtom(molgraph.AtomPropNumber, n, n))
			*firstInBrackets = false
		case c == '@':
			sc.i++
			if sc.peek() == '@' {
				sc.i++
				desc.chirality = molgraph.ChiralityCW
			} else {
				desc.chirality = molgraph.ChiralityCCW
			}
			*firstInBrackets = false
		case c == '+' || c == '-':
			sign := 1
			if c == '-' {
				sign = -1
			}
			sc.i++
			mag := 0
			if sc.peek() >= '0' && sc.peek() <= '9' {
				mag = sc.readUnsigned()
			} else {
				mag = 1
				for sc.peek() == c {
					mag++
					sc.i++
				}
			}
			desc.charge = sign * mag
			combine(molgraph.LeafAtom(molgraph.AtomPropCharge, desc.charge, desc.charge))
			*firstInBrackets = false
		case c == ':':
			sc.i++
			ignorable := false
			if sc.peek() == '?' {
				ignorable = true
				sc.i++
			}
			n := sc.readUnsigned()
			desc.aam = n
			desc.ignorableAAM = ignorable
			combine(molgraph.LeafAtom(molgraph.AtomPropAAM, n, n))
			*firstInBrackets = false
		case c == '$' && sc.at(1) == '(':
			if !l.smartsMode {
				return nil, newSemanticError(sc.pos(), "$(...) recursive fragment is SMARTS-only")
			}
			start := sc.i + 2
			depth := 1
			j := start
			for j < len(content) && depth > 0 {
				if content[j] == '(' {
					depth++
				} else if content[j] == ')' {
					depth--
				}
				j++
			}
			inner := content[start : j-1]
			sub := molgraph.New(true)
			if err := LoadSmarts(NewStringScanner(inner), sub, l.opts); err != nil {
				return nil, err
			}
			combine(&molgraph.AtomExpr{Op: molgraph.ExprLeaf, Prop: molgraph.AtomPropFragment, Fragment: sub})
			sc.i = j
			*firstInBrackets = false
		case c >= 'b' && c <= 's' && isAromaticOrganicLower(c):
			sc.i++
			sym := strings.ToUpper(string(rune(c)))
			num, _ := molgraph.ElementFromSymbol(sym)
			if desc.label != 0 {
				return nil, newSemanticError(sc.pos(), "duplicate element assignment")
			}
			desc.label = num
			desc.aromatic = true
			combine(molgraph.AndAtom(molgraph.LeafAtom(molgraph.AtomPropNumber, num, num), molgraph.LeafAtom(molgraph.AtomPropAromatic, 1, 1)))
			*firstInBrackets = false
		case c >= 'A' && c <= 'Z':
			sym := string(rune(c))
			sc.i++
			if sc.peek() >= 'a' && sc.peek() <= 'z' {
				two := sym + string(rune(sc.peek()))
				if num, err := molgraph.ElementFromSymbol(two); err == nil {
					sym = two
					sc.i++
					_ = num
				}
			}
			num, err := molgraph.ElementFromSymbol(sym)
			if err != nil {
				return nil, newSemanticError(sc.pos(), "unrecognized element symbol %q", sym)
			}
			if desc.label != 0 {
				return nil, newSemanticError(sc.pos(), "duplicate element assignment")
			}
			desc.label = num
			combine(molgraph.LeafAtom(molgraph.AtomPropNumber, num, num))
			*firstInBrackets = false
		default:
			return nil, newSemanticError(sc.pos(), "unrecognized atom primitive %q", rune(c))
		}
	}
	return acc, nil
}

func (e *exprScanner) readUnsigned() int {
	n := 0
	for e.peek() >= '0' && e.peek() <= '9' {
		n = n*10 + int(e.peek()-'0')
		e.i++
	}
	return n
}

func (e *exprScanner) readUnsignedDefault(def int) int {
	if e.peek() >= '0' && e.peek() <= '9' {
		return e.readUnsigned()
	}
	return def
}

func isSecondLetterOf(list string, c byte) bool {
	for _, sym := range strings.Split(list, ",") {
		if len(sym) == 2 && sym[1] == c {
			return true
		}
	}
	return false
}

func isRElementLetter(c byte) bool {
	switch c {
	case 'a', 'b', 'e', 'f', 'g', 'h', 'n', 'u':
		return true
	}
	return false
}

func isAromaticOrganicLower(c byte) bool {
	switch c {
	case 'b', 'c', 'n', 'o', 'p', 's':
		return true
	}
	return false
}
