// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : extended_tail.go
package smiles

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cx-luo/go-smiles/molgraph"
)

// readExtendedTail implements spec.md §4.4: if the scanner's next non-space
// token is `|`, consume key-value segments until the closing `|`.
func (l *loader) readExtendedTail(g *molgraph.Graph) error {
	l.sc.SkipWhitespace()
	if l.sc.Peek() != '|' {
		return nil
	}
	l.sc.Read()
	content, err := l.captureTailContent()
	if err != nil {
		return err
	}
	return applyExtendedTail(g, content)
}

func (l *loader) captureTailContent() (string, error) {
	var sb strings.Builder
	for {
		c := l.sc.Peek()
		if c == EOF {
			return "", newSyntaxError(l.sc.Pos(), "EOF inside extended tail")
		}
		if c == '|' {
			l.sc.Read()
			return sb.String(), nil
		}
		sb.WriteByte(byte(c))
		l.sc.Read()
	}
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func readIDsAt(content string, pos int) ([]int, int) {
	var ids []int
	for {
		start := pos
		for pos < len(content) && isDigitByte(content[pos]) {
			pos++
		}
		if pos == start {
			break
		}
		n, _ := strconv.Atoi(content[start:pos])
		ids = append(ids, n)
		if pos < len(content) && content[pos] == ',' && pos+1 < len(content) && isDigitByte(content[pos+1]) {
			pos++
			continue
		}
		break
	}
	return ids, pos
}

func applyExtendedTail(g *molgraph.Graph, content string) error {
	pos := 0
	for pos < len(content) {
		if content[pos] == ',' {
			pos++
			continue
		}
		if content[pos] == '$' {
			end := strings.IndexByte(content[pos+1:], '$')
			if end < 0 {
				return newSyntaxError(0, "unterminated $...$ pseudo-atom label block")
			}
			labelsStr := content[pos+1 : pos+1+end]
			if err := applyPseudoLabels(g, labelsStr); err != nil {
				return err
			}
			pos = pos + 1 + end + 1
			if pos < len(content) && content[pos] == ',' {
				pos++
			}
			continue
		}

		tagStart := pos
		for pos < len(content) && content[pos] != ':' && !isDigitByte(content[pos]) {
			pos++
		}
		tag := content[tagStart:pos]
		groupStart := pos
		for pos < len(content) && isDigitByte(content[pos]) {
			pos++
		}
		groupStr := content[groupStart:pos]
		if pos >= len(content) || content[pos] != ':' {
			return newSyntaxError(0, "malformed extended-tail segment %q", tag)
		}
		pos++
		ids, newPos := readIDsAt(content, pos)
		pos = newPos
		if pos < len(content) && content[pos] == ',' {
			pos++
		}

		if err := applyTailSegment(g, tag, groupStr, ids); err != nil {
			return err
		}
	}
	return nil
}

func applyTailSegment(g *molgraph.Graph, tag, groupStr string, ids []int) error {
	switch tag {
	case "w":
		for _, id := range ids {
			if g.Stereocenters.Exists(id) {
				if err := g.Stereocenters.SetType(id, molgraph.StereoAny, 0); err != nil {
					return err
				}
			} else {
				g.Stereocenters.Add(id, molgraph.StereoAny, 0, [4]int{-1, -1, -1, -1})
			}
		}
	case "a":
		for _, id := range ids {
			if err := g.Stereocenters.SetType(id, molgraph.StereoAbs, 0); err != nil {
				return err
			}
		}
	case "o":
		gid, _ := strconv.Atoi(groupStr)
		for _, id := range ids {
			if err := g.Stereocenters.SetType(id, molgraph.StereoOr, gid); err != nil {
				return err
			}
		}
	case "&":
		gid, _ := strconv.Atoi(groupStr)
		for _, id := range ids {
			if err := g.Stereocenters.SetType(id, molgraph.StereoAnd, gid); err != nil {
				return err
			}
		}
	case "^":
		k, _ := strconv.Atoi(groupStr)
		var radical int
		switch k {
		case 1:
			radical = molgraph.RadicalDoublet
		case 3:
			radical = molgraph.RadicalSinglet
		case 4:
			radical = molgraph.RadicalTriplet
		default:
			return newSemanticError(0, "unsupported radical number %d in '^...:' tail", k)
		}
		for _, id := range ids {
			g.Atoms[id].Radical = radical
		}
	case "ha":
		for _, id := range ids {
			g.HighlightAtom(id)
		}
	case "hb":
		for _, id := range ids {
			g.HighlightBond(id)
		}
	default:
		return newSyntaxError(0, "unrecognized extended-tail prefix %q", tag)
	}
	return nil
}

// applyPseudoLabels implements the `$label1;label2;...;labelN$` segment:
// `_R<n>` marks an R-site, `_AP<n>` removes the atom and records an
// attachment-point marker on each former neighbor, anything else becomes a
// plain pseudo-atom value.
func applyPseudoLabels(g *molgraph.Graph, labelsStr string) error {
	labels := strings.Split(labelsStr, ";")
	if len(labels) != len(g.Atoms) {
		return newSemanticError(0, "pseudo-atom label count %d does not match atom count %d", len(labels), len(g.Atoms))
	}
	var toRemove []int
	for i, lbl := range labels {
		switch {
		case lbl == "":
			continue
		case strings.HasPrefix(lbl, "_R"):
			n, err := strconv.Atoi(lbl[2:])
			if err != nil {
				return newSemanticError(0, "malformed R-site label %q", lbl)
			}
			g.Atoms[i].Number = molgraph.ElemRSite
			g.Atoms[i].RGroupNumber = n
			g.AllowRGroupOnRSite(i, n)
		case strings.HasPrefix(lbl, "_AP"):
			n, err := strconv.Atoi(lbl[3:])
			if err != nil {
				return newSemanticError(0, "malformed attachment-point label %q", lbl)
			}
			for _, nb := range g.NeighborsOf(i) {
				g.AddAttachmentPoint(n, nb)
			}
			toRemove = append(toRemove, i)
		default:
			g.Atoms[i].PseudoAtomValue = lbl
			g.Atoms[i].Number = molgraph.ElemPseudo
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(toRemove)))
	for _, idx := range toRemove {
		g.RemoveAtom(idx)
	}
	return nil
}
