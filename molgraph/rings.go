// Package molgraph coding=utf-8
// @Project : smilesloader
// @File    : rings.go
package molgraph

// Ring is a single perceived ring: the ordered atom indices around it and
// the bond indices connecting consecutive atoms.
type Ring struct {
	Atoms []int
	Bonds []int
}

// SSSR approximates the smallest set of smallest rings with a DFS
// spanning-tree / back-edge fundamental cycle basis: a true SSSR picks the
// smallest representative of each cycle-space equivalence class, which
// needs Horton/Figueras-style candidate enumeration and minimality repair;
// this returns the fundamental basis itself, which is a correct cycle basis
// (same rank, same ring-membership closure under aromaticity perception)
// but is not guaranteed minimal when the graph has fused or bridged rings.
// See DESIGN.md for the tradeoff this accepts.
func (g *Graph) SSSR() []Ring {
	n := len(g.Atoms)
	visited := make([]bool, n)
	parentAtom := make([]int, n)
	parentBond := make([]int, n)
	depth := make([]int, n)
	for i := range parentAtom {
		parentAtom[i] = -1
		parentBond[i] = -1
	}

	var rings []Ring
	treeEdge := make([]bool, len(g.Bonds))

	var dfs func(start int)
	dfs = func(start int) {
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, ei := range g.adjacency[u] {
				v := g.otherEnd(ei, u)
				if ei == parentBond[u] {
					continue
				}
				if !visited[v] {
					visited[v] = true
					parentAtom[v] = u
					parentBond[v] = ei
					depth[v] = depth[u] + 1
					treeEdge[ei] = true
					stack = append(stack, v)
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		if !visited[i] {
			dfs(i)
		}
	}

	seen := make(map[int]bool)
	for ei, b := range g.Bonds {
		if treeEdge[ei] || seen[ei] {
			continue
		}
		seen[ei] = true
		rings = append(rings, g.fundamentalCycle(b.Beg, b.End, ei, parentAtom, parentBond, depth))
	}
	return rings
}

func (g *Graph) fundamentalCycle(u, v, closingBond int, parentAtom, parentBond, depth []int) Ring {
	var atomsU, atomsV []int
	var bondsU, bondsV []int
	a, b := u, v
	for depth[a] > depth[b] {
		atomsU = append(atomsU, a)
		bondsU = append(bondsU, parentBond[a])
		a = parentAtom[a]
	}
	for depth[b] > depth[a] {
		atomsV = append(atomsV, b)
		bondsV = append(bondsV, parentBond[b])
		b = parentAtom[b]
	}
	for a != b {
		atomsU = append(atomsU, a)
		bondsU = append(bondsU, parentBond[a])
		atomsV = append(atomsV, b)
		bondsV = append(bondsV, parentBond[b])
		a = parentAtom[a]
		b = parentAtom[b]
	}

	ring := Ring{}
	ring.Atoms = append(ring.Atoms, atomsU...)
	ring.Atoms = append(ring.Atoms, a) // the lowest common ancestor
	for i := len(atomsV) - 1; i >= 0; i-- {
		ring.Atoms = append(ring.Atoms, atomsV[i])
	}

	ring.Bonds = append(ring.Bonds, bondsU...)
	ring.Bonds = append(ring.Bonds, closingBond)
	for i := len(bondsV) - 1; i >= 0; i-- {
		ring.Bonds = append(ring.Bonds, bondsV[i])
	}
	return ring
}

// RingBondIndices returns the set of bond indices that participate in at
// least one SSSR ring, used by the aromatic marker (spec.md §4.5) to decide
// which bonds are even eligible for aromaticity.
func RingBondIndices(rings []Ring) map[int]bool {
	out := make(map[int]bool)
	for _, r := range rings {
		for _, bi := range r.Bonds {
			out[bi] = true
		}
	}
	return out
}

// RingAtomIndices returns the set of atom indices that participate in at
// least one SSSR ring.
func RingAtomIndices(rings []Ring) map[int]bool {
	out := make(map[int]bool)
	for _, r := range rings {
		for _, ai := range r.Atoms {
			out[ai] = true
		}
	}
	return out
}
