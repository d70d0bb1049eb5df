package molgraph

import "testing"

func TestStereocenterStoreAddExistsGet(t *testing.T) {
	s := newStereocenterStore()
	if s.Exists(0) {
		t.Fatalf("empty store should report no stereocenter at atom 0")
	}
	s.Add(0, StereoAbs, 0, [4]int{1, 2, 3, -1})
	if !s.Exists(0) {
		t.Fatalf("expected stereocenter to exist after Add")
	}
	c, ok := s.Get(0)
	if !ok || c.Type != StereoAbs {
		t.Fatalf("Get(0) = (%v, %v), want a StereoAbs center", c, ok)
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
}

func TestStereocenterStoreSetType(t *testing.T) {
	s := newStereocenterStore()
	if err := s.SetType(0, StereoAnd, 1); err == nil {
		t.Fatalf("SetType on an unregistered atom should fail")
	}
	s.Add(0, StereoAbs, 0, [4]int{1, 2, 3, -1})
	if err := s.SetType(0, StereoOr, 2); err != nil {
		t.Fatalf("SetType failed: %v", err)
	}
	c, _ := s.Get(0)
	if c.Type != StereoOr || c.Group != 2 {
		t.Fatalf("SetType did not update type/group: %+v", c)
	}
}

func TestIsPossibleStereocenter(t *testing.T) {
	g := New(false)
	center := g.AddAtom(NewAtom(ElemC))
	n1 := g.AddAtom(NewAtom(ElemN))
	n2 := g.AddAtom(NewAtom(ElemO))
	g.AddBond(Bond{Beg: center, End: n1, Order: BondSingle})
	g.AddBond(Bond{Beg: center, End: n2, Order: BondSingle})

	if g.IsPossibleStereocenter(center) {
		t.Fatalf("an atom with only 2 neighbors should not be a possible stereocenter")
	}

	n3 := g.AddAtom(NewAtom(ElemF))
	g.AddBond(Bond{Beg: center, End: n3, Order: BondSingle})
	if !g.IsPossibleStereocenter(center) {
		t.Fatalf("an atom with 3 neighbors should be a possible stereocenter")
	}
}
