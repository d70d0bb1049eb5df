// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : finalize_stereo.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

// calcStereocenters implements spec.md §4.7 steps 1-6: build a tetrahedral
// pyramid for every atom with chirality != 0 and register it with the
// graph's stereocenter store.
func (l *loader) calcStereocenters(g *molgraph.Graph) error {
	for i, ad := range l.atoms {
		if ad.chirality == molgraph.ChiralityNone {
			continue
		}
		neighbors := g.NeighborsOf(i)
		pyramid, ok := buildStereoPyramid(ad, neighbors)
		if !ok {
			// Step 2: the neighbor traversal did not reach four slots, or
			// overflowed past them. The original silently continues past the
			// atom in the too-few case; we surface both as an error unless
			// the caller opted to ignore stereochemistry errors (spec.md §9
			// design note).
			if l.opts.IgnoreStereochemistryErrors {
				continue
			}
			if len(neighbors) > 4 {
				return newStereoError(0, "atom %d: too many bonds for a chiral atom", i)
			}
			return newStereoError(0, "atom %d: stereo pyramid did not resolve four neighbor slots", i)
		}
		if !g.IsPossibleStereocenter(i) {
			if l.opts.IgnoreStereochemistryErrors {
				continue
			}
			return newStereoError(0, "atom %d declared chiral but is not a possible stereocenter", i)
		}
		g.Stereocenters.Add(i, molgraph.StereoAbs, 0, pyramid)
	}
	return nil
}

// buildStereoPyramid implements spec.md §4.7 steps 1, 3, 4, 5.
func buildStereoPyramid(ad atomDesc, neighbors []int) ([4]int, bool) {
	var quad [4]int
	for i := range quad {
		quad[i] = -1
	}
	idx := 0
	used := make(map[int]bool, 4)

	if ad.parent >= 0 {
		quad[idx] = ad.parent
		used[ad.parent] = true
		idx++
	}
	implicitHSlot := false
	if len(neighbors) == 3 {
		implicitHSlot = true
		idx++ // leave quad[idx-1] == -1 as the implicit-H placeholder
	}
	for _, n := range neighbors {
		if used[n] {
			continue
		}
		if idx >= 4 {
			// More real neighbors than pyramid slots: a chiral atom can have
			// at most four substituents (spec.md §7).
			return quad, false
		}
		quad[idx] = n
		used[n] = true
		idx++
	}
	if idx != 4 {
		return quad, false
	}

	if implicitHSlot {
		hpos := 0
		for quad[hpos] != -1 {
			hpos++
		}
		parity := 0
		for hpos < 3 {
			quad[hpos], quad[hpos+1] = quad[hpos+1], quad[hpos]
			hpos++
			parity++
		}
		if parity%2 == 1 {
			quad[0], quad[1] = quad[1], quad[0]
		}
	} else {
		quad = [4]int{quad[1], quad[2], quad[3], quad[0]}
	}

	if ad.chirality == molgraph.ChiralityCW {
		quad[0], quad[1] = quad[1], quad[0]
	}
	return quad, true
}
