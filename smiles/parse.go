// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : parse.go
package smiles

import (
	"strconv"
	"strings"

	"github.com/cx-luo/go-smiles/molgraph"
)

func isRingDigit(c int) bool {
	return c == '%' || (c >= '0' && c <= '9')
}

func isAtomStart(c int) bool {
	if c == '[' || c == '*' {
		return true
	}
	if c >= 'A' && c <= 'Z' {
		return true
	}
	return isAromaticOrganicLower(byte(c))
}

// parseMolecule is the main recursive-descent loop over the SMILES/SMARTS
// grammar (spec.md §4.1). It populates l.atoms, l.bonds, l.cycles, and
// l.polymerRepetitions; it does not touch the destination graph (that is
// emit's job) or consume the extended `|...|` tail or the molecule name.
func (l *loader) parseMolecule() error {
	curAtom := -1
	for !l.sc.IsEOF() {
		c := l.sc.Peek()
		if c == EOF || c == ' ' || c == '\t' || c == '\n' || c == '|' {
			break
		}
		switch c {
		case '.':
			l.sc.Read()
			if l.smartsMode && l.balance == 0 {
				l.currentCompNo++
				l.insideSmartsComponent = false
			}
			curAtom = -1
			continue
		case '(':
			pos := l.sc.Pos()
			l.sc.Read()
			if curAtom < 0 && !l.smartsMode {
				return newSyntaxError(pos, "'(' at top level misplaced")
			}
			l.balance++
			if l.smartsMode && l.balance == 1 && !l.insideSmartsComponent {
				l.currentCompNo++
				l.insideSmartsComponent = true
			}
			l.atomStack = append(l.atomStack, curAtom)
			continue
		case ')':
			pos := l.sc.Pos()
			l.sc.Read()
			l.balance--
			if len(l.atomStack) == 0 {
				return newSyntaxError(pos, "')' without '('")
			}
			curAtom = l.atomStack[len(l.atomStack)-1]
			l.atomStack = l.atomStack[:len(l.atomStack)-1]
			if l.smartsMode && l.balance == 0 {
				l.insideSmartsComponent = false
			}
			continue
		case '{':
			if err := l.handlePolymerBrace(&curAtom); err != nil {
				return err
			}
			continue
		}

		qualPos := l.sc.Pos()
		bd, rawQual, err := l.readBondQualifierRun()
		if err != nil {
			return err
		}
		nc := l.sc.Peek()
		if isRingDigit(nc) {
			ringNum, closePos, err := l.readRingNumber()
			if err != nil {
				return err
			}
			if err := l.handleRingClosure(ringNum, curAtom, bd, rawQual, qualPos, closePos); err != nil {
				return err
			}
			continue
		}
		if !isAtomStart(nc) {
			return newSyntaxError(l.sc.Pos(), "expected atom, got %q", rune(nc))
		}
		desc, err := l.readAtomToken()
		if err != nil {
			return err
		}
		idx := l.addAtomDesc(desc)
		if curAtom >= 0 {
			l.atoms[idx].parent = curAtom
			l.addBondDesc(curAtom, idx, bd)
		}
		curAtom = idx
	}

	if l.balance != 0 || len(l.atomStack) != 0 {
		return newSyntaxError(l.sc.Pos(), "unbalanced '(' at end of input")
	}
	for n, slot := range l.cycles {
		if slot.open {
			return newSyntaxError(l.sc.Pos(), "cycle %d not closed", n)
		}
	}
	if len(l.openPolymerIdx) != 0 {
		return newSyntaxError(l.sc.Pos(), "unclosed polymer")
	}
	return nil
}

func (l *loader) readRingNumber() (int, int, error) {
	pos := l.sc.Pos()
	if l.sc.Peek() == '%' {
		l.sc.Read()
		n, ok := l.sc.ReadFixedWidth(2)
		if !ok {
			return 0, 0, newSyntaxError(pos, "'%%' not followed by two digits")
		}
		return n, pos, nil
	}
	c := l.sc.Read()
	return c - '0', pos, nil
}

// handleRingClosure implements spec.md §4.1 step 1: open, pending-qualifier
// close, or bare close of a ring slot.
func (l *loader) handleRingClosure(ringNum, curAtom int, bd bondDesc, rawQual string, qualPos, closePos int) error {
	if curAtom < 0 {
		return newSyntaxError(closePos, "ring closure with no current atom")
	}
	slot := &l.cycles[ringNum]
	if !slot.open {
		slot.open = true
		slot.atom = curAtom
		if rawQual != "" {
			slot.hasPendingQualifier = true
			slot.pendingQualifier = rawQual
			slot.pendingPos = qualPos
		} else {
			slot.hasPendingQualifier = false
		}
		return nil
	}

	openerAtom := slot.atom
	var finalBd bondDesc
	if slot.hasPendingQualifier {
		openBd := bondDesc{}
		expr, err := l.parseBondLogical(slot.pendingQualifier, slot.pendingPos, &openBd)
		if err != nil {
			return err
		}
		openBd.queryExpr = expr

		normOpen := normalizeQualifier(slot.pendingQualifier)
		normClose := normalizeQualifier(rawQual)
		if normOpen != normClose {
			return newSemanticError(closePos, "ring closure qualifier mismatch: %q vs %q", slot.pendingQualifier, rawQual)
		}

		// "Potentially buggy" behavior preserved verbatim (spec.md §9): the
		// mismatch check compares the *same* declared direction, and the
		// remedy is 3 - bond.dir, not bond.dir itself.
		if openBd.dir != molgraph.BondDirNone || bd.dir != molgraph.BondDirNone {
			if bd.dir == openBd.dir {
				if !l.opts.IgnoreClosingBondDirectionMismatch {
					return newStereoError(closePos, "closing bond direction conflicts with pending bond direction")
				}
			} else {
				openBd.dir = 3 - bd.dir
			}
		}
		finalBd = openBd
	} else {
		finalBd = bd
	}
	finalBd.beg = openerAtom
	finalBd.end = curAtom
	l.addBondDescRaw(finalBd)

	slot.open = false
	slot.hasPendingQualifier = false
	return nil
}

func normalizeQualifier(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c == '/' || c == '\\' {
			b[i] = '-'
		}
	}
	return string(b)
}

// handlePolymerBrace consumes a `{...}` polymer marker: `{-}` opens a
// polymer on curAtom; `{+n}` or `{+nn<k>}` closes the most recently opened
// one on curAtom (spec.md §4.8).
func (l *loader) handlePolymerBrace(curAtom *int) error {
	pos := l.sc.Pos()
	l.sc.Read() // consume '{'
	var content []byte
	for l.sc.Peek() != '}' && l.sc.Peek() != EOF {
		content = append(content, byte(l.sc.Read()))
	}
	if l.sc.Peek() != '}' {
		return newSyntaxError(pos, "EOF inside '{...}'")
	}
	l.sc.Read() // consume '}'
	s := string(content)

	switch {
	case s == "-":
		if *curAtom < 0 {
			return newSyntaxError(pos, "polymer marker with no current atom")
		}
		idx := len(l.polymerRepetitions)
		l.polymerRepetitions = append(l.polymerRepetitions, -1)
		l.openPolymerIdx = append(l.openPolymerIdx, idx)
		l.atoms[*curAtom].startsPolymer = true
		l.atoms[*curAtom].polymerIndex = idx
		return nil
	case strings.HasPrefix(s, "+"):
		if len(l.openPolymerIdx) == 0 {
			return newSyntaxError(pos, "polymer close with no open polymer")
		}
		idx := l.openPolymerIdx[len(l.openPolymerIdx)-1]
		l.openPolymerIdx = l.openPolymerIdx[:len(l.openPolymerIdx)-1]
		rest := s[1:]
		var mult int
		switch {
		case rest == "n":
			mult = 0
		case strings.HasPrefix(rest, "nn"):
			n, err := strconv.Atoi(rest[2:])
			if err != nil {
				return newSyntaxError(pos, "malformed multiple-group count %q", rest)
			}
			mult = n
		default:
			return newSyntaxError(pos, "unrecognized polymer close marker %q", s)
		}
		l.polymerRepetitions[idx] = mult
		if *curAtom < 0 {
			return newSyntaxError(pos, "polymer marker with no current atom")
		}
		l.atoms[*curAtom].endsPolymer = true
		l.atoms[*curAtom].polymerIndex = idx
		return nil
	default:
		return newSyntaxError(pos, "unrecognized polymer marker %q", s)
	}
}

func (l *loader) addAtomDesc(desc atomDesc) int {
	idx := len(l.atoms)
	if len(l.openPolymerIdx) > 0 && desc.polymerIndex < 0 {
		desc.polymerIndex = l.openPolymerIdx[len(l.openPolymerIdx)-1]
	}
	l.atoms = append(l.atoms, desc)
	return idx
}

func (l *loader) addBondDescRaw(bd bondDesc) int {
	idx := len(l.bonds)
	l.bonds = append(l.bonds, bd)
	l.bondDirs = append(l.bondDirs, bd.dir)
	return idx
}

func (l *loader) addBondDesc(beg, end int, bd bondDesc) int {
	bd.beg = beg
	bd.end = end
	return l.addBondDescRaw(bd)
}
