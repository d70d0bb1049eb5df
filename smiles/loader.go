// Package smiles coding=utf-8
// @Project : smilesloader
// @File    : loader.go
package smiles

import "github.com/cx-luo/go-smiles/molgraph"

// atomDesc is the parse-intermediate record for one atom token. It is kept
// separate from molgraph.Atom so the post-processing passes can see the
// "empty bond"/"unresolved" sentinels a direct-to-graph parser would lose
// (spec.md §9 design note).
type atomDesc struct {
	label     int // atomic number, an Elem* sentinel, or 0 if purely query
	isotope   int
	charge    int
	hydrogens int // explicit H count, or -1 if not stated
	chirality int
	aromatic  bool

	aam          int
	ignorableAAM bool

	brackets bool
	starAtom bool

	startsPolymer bool
	endsPolymer   bool
	polymerIndex  int

	parent    int // index of preceding atom along the spanning walk, or -1
	neighbors []int // neighbor atom indices; unresolved ring openings are
	// temporarily represented out-of-band in the ring table, not inline

	queryExpr *molgraph.AtomExpr
}

func newAtomDesc() atomDesc {
	return atomDesc{hydrogens: -1, parent: -1, polymerIndex: -1}
}

// bondDesc is the parse-intermediate record for one bond.
type bondDesc struct {
	beg, end int // end == -1 until a pending ring closes
	order    int // molgraph.BondEmpty ("to be resolved") until finalized
	dir      int
	topology int

	queryExpr *molgraph.BondExpr
}

func newBondDesc(beg int) bondDesc {
	return bondDesc{beg: beg, end: -1, order: molgraph.BondEmpty}
}

// cycleSlot is one entry of the dense 0..99 ring-number table.
type cycleSlot struct {
	open               bool
	atom               int
	bondIdx            int // index into loader.bonds for the opening bond, if a qualifier was given
	hasPendingQualifier bool
	pendingQualifier   string
	pendingPos         int
}

// Logger is an optional caller-side hook for parse-start/parse-done/warning
// events. The parser itself never logs internally (spec.md §5: no global
// mutable state, a pure function over a scanner and a destination graph);
// wiring a *zap.SugaredLogger through this interface is strictly the CLI's
// job (see cmd/smilesload).
type Logger interface {
	ParseStart(raw string)
	ParseDone(name string, atoms, bonds int)
	Warning(msg string)
}

// LoaderOptions configures a single load call, mirroring spec.md §6.
type LoaderOptions struct {
	// ReactionAtomMapping, when non-nil, receives the AAM number of each
	// atom in parse order (0 if unset).
	ReactionAtomMapping *[]int
	// IgnorableAAM, when non-nil, receives the ignorable-AAM flag of each
	// atom in parse order.
	IgnorableAAM *[]bool
	// InsideRSMILES suppresses name-reading and R-site materialization from
	// atom-atom maps on `*`.
	InsideRSMILES bool
	// IgnoreClosingBondDirectionMismatch demotes a ring-closure direction
	// conflict from an error to a silent skip.
	IgnoreClosingBondDirectionMismatch bool
	// IgnoreStereochemistryErrors demotes stereocenter construction
	// failures from an error to a silent skip.
	IgnoreStereochemistryErrors bool
	// Logger, if set, receives parse lifecycle events.
	Logger Logger
}

// loader holds the mutable parse state for a single load call (spec.md §3
// "Parse state"). A loader value must not be reused across loads and is not
// safe for concurrent use; distinct loader values never share state.
type loader struct {
	sc   Scanner
	opts LoaderOptions

	query      bool
	smartsMode bool

	atoms []atomDesc
	bonds []bondDesc

	cycles [100]cycleSlot

	atomStack []int // current chain tip stack under '(' branches

	polymerRepetitions []int // per polymer-index multiplicity; 0 = infinite
	openPolymerIdx      []int // stack of currently-open polymer indices

	balance               int
	currentCompNo         int
	insideSmartsComponent bool

	bondDirs []int // per-bond dir, carried through to the cis/trans builder
}

func newLoaderState(sc Scanner, query, smartsMode bool, opts LoaderOptions) *loader {
	return &loader{
		sc:            sc,
		opts:          opts,
		query:         query,
		smartsMode:    smartsMode,
		currentCompNo: 0,
	}
}

// LoadMolecule parses a SMILES string from sc into a plain (non-query)
// molecule graph.
func LoadMolecule(sc Scanner, g *molgraph.Graph, opts LoaderOptions) error {
	return load(sc, g, false, false, opts)
}

// LoadQueryMolecule parses a SMILES string from sc into a query molecule,
// where query-only primitives (aliphatic, ring membership, connectivity,
// ...) are permitted.
func LoadQueryMolecule(sc Scanner, g *molgraph.Graph, opts LoaderOptions) error {
	return load(sc, g, true, false, opts)
}

// LoadSmarts parses a SMARTS pattern from sc into a query molecule, with
// SMARTS-only syntax enabled: `$(...)` recursive fragments, `#<n>` atomic
// number, implicit single-or-aromatic bonds, and component grouping.
func LoadSmarts(sc Scanner, g *molgraph.Graph, opts LoaderOptions) error {
	return load(sc, g, true, true, opts)
}

func load(sc Scanner, g *molgraph.Graph, query, smartsMode bool, opts LoaderOptions) error {
	l := newLoaderState(sc, query, smartsMode, opts)
	if opts.Logger != nil {
		opts.Logger.ParseStart(previewInput(sc))
	}
	if err := l.parseMolecule(); err != nil {
		return err
	}
	if err := l.emit(g); err != nil {
		return err
	}
	if !l.smartsMode {
		l.markAromaticBonds(g)
	}
	if l.query {
		l.forbidImplicitHydrogen(g)
	} else {
		l.setRadicalsAndHCounts(g)
	}
	if err := l.calcStereocenters(g); err != nil {
		return err
	}
	g.BuildCisTrans(l.bondDirs)
	if err := l.handlePolymerRepetition(g); err != nil {
		return err
	}
	if err := l.readExtendedTail(g); err != nil {
		return err
	}
	if !opts.InsideRSMILES && !l.sc.IsEOF() {
		l.sc.SkipWhitespace()
		if tail := l.sc.ReadLineInto(); tail != "" {
			g.Name = tail
		}
	}
	if opts.Logger != nil {
		opts.Logger.ParseDone(g.Name, len(g.Atoms), len(g.Bonds))
	}
	return nil
}

// previewInput renders the scanner's remaining input for a log line; it
// never consumes, since StringScanner/ReaderScanner both expose the raw
// buffer only through Read/Peek and we don't want logging to perturb parse
// state. A best-effort string scanner fast path covers the common CLI case.
func previewInput(sc Scanner) string {
	if ss, ok := sc.(*StringScanner); ok {
		return ss.s[ss.pos:]
	}
	return ""
}
