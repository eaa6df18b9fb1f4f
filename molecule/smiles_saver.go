// Package molecule coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/05 16:40
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : smiles_saver.go
// @Software: GoLand
package molecule

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// String returns the canonical SMILES form of the molecule. The output
// follows the OpenSMILES standard-form rules: organic-subset atoms bare
// where possible, aromatic rings in lower-case (including Kekulé-written
// input), removable explicit hydrogens absorbed into the heavy atom's
// hydrogen count, ring numbering from 1, and disconnected components
// separated by dots. The string re-parses to an equivalent molecule and is
// idempotent under parse/serialize.
func (m *Molecule) String() string {
	if len(m.Nodes) == 0 {
		return ""
	}
	w := newSmilesWriter(m)
	return w.write()
}

// wNeighbour is an adjacency entry that remembers the stored bond
// orientation, needed to flip directional (/ \) bonds written against the
// traversal direction.
type wNeighbour struct {
	node    uint16
	kind    BondType
	forward bool // true when the bond was stored source -> this neighbour
}

type ringPairInfo struct {
	a, b    uint16 // a is the closing (deeper) atom, b the ancestor
	kind    BondType
	forward bool // orientation of the stored bond relative to a -> b
}

// smilesWriter holds the state of one canonical serialization pass.
type smilesWriter struct {
	mol *Molecule

	adjFull    [][]wNeighbour // every bond, including explicit hydrogens
	adj        [][]wNeighbour // heavy-atom graph (removable H excluded)
	removableH []bool
	virtualH   []uint8
	labels     []uint64 // Morgan-style environment labels

	effAromatic   []bool
	aromaticEdges map[edgeKey]bool
	bridges       map[edgeKey]bool
	kindOverride  map[edgeKey]BondType // directional marks demoted to single
	dropChirality []bool

	treeChildren [][]wNeighbour
	ringPairs    [][]uint16 // per node: pair ids in discovery order
	pairInfo     map[uint16]ringPairInfo
	nextPairID   uint16

	pairToRnum map[uint16]int
	nextRnum   int

	sb strings.Builder
}

func newSmilesWriter(m *Molecule) *smilesWriter {
	return &smilesWriter{
		mol:           m,
		aromaticEdges: make(map[edgeKey]bool),
		bridges:       make(map[edgeKey]bool),
		kindOverride:  make(map[edgeKey]BondType),
		pairInfo:      make(map[uint16]ringPairInfo),
		pairToRnum:    make(map[uint16]int),
		nextRnum:      1,
	}
}

func (w *smilesWriter) write() string {
	n := len(w.mol.Nodes)

	w.adjFull = make([][]wNeighbour, n)
	for _, b := range w.mol.Bonds {
		w.adjFull[b.Source] = append(w.adjFull[b.Source], wNeighbour{node: b.Target, kind: b.Kind, forward: true})
		w.adjFull[b.Target] = append(w.adjFull[b.Target], wNeighbour{node: b.Source, kind: b.Kind, forward: false})
	}

	w.findRemovableHydrogens()

	w.adj = make([][]wNeighbour, n)
	for _, b := range w.mol.Bonds {
		if w.removableH[b.Source] || w.removableH[b.Target] {
			continue
		}
		w.adj[b.Source] = append(w.adj[b.Source], wNeighbour{node: b.Target, kind: b.Kind, forward: true})
		w.adj[b.Target] = append(w.adj[b.Target], wNeighbour{node: b.Source, kind: b.Kind, forward: false})
	}

	w.refineLabels()
	w.pruneChirality()
	w.pruneDirectionalBonds()
	w.computeKekuleOverlay()
	w.findBridges()

	w.treeChildren = make([][]wNeighbour, n)
	w.ringPairs = make([][]uint16, n)

	visited := make([]bool, n)
	for i := range visited {
		if w.removableH[i] {
			visited[i] = true
		}
	}

	first := true
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		component := w.collectComponent(uint16(i), visited)
		start := w.bestStartingAtom(component)
		w.buildSpanningTree(start)
		if !first {
			w.sb.WriteByte('.')
		}
		w.emit(start)
		first = false
	}

	return w.sb.String()
}

// findRemovableHydrogens marks every degree-1 explicit hydrogen with no
// charge, isotope, class or chirality whose single neighbour is not itself a
// hydrogen, and absorbs it into that neighbour's virtual hydrogen count.
func (w *smilesWriter) findRemovableHydrogens() {
	n := len(w.mol.Nodes)
	w.removableH = make([]bool, n)
	w.virtualH = make([]uint8, n)

	for i, node := range w.mol.Nodes {
		if node.Atom.Element != ELEM_H {
			continue
		}
		if node.Atom.Charge != 0 || node.Atom.HasIsotope() || node.HasClass() || node.Chirality != ChiralityNone {
			continue
		}
		if len(w.adjFull[i]) != 1 {
			continue
		}
		neighbour := w.adjFull[i][0].node
		if w.mol.Nodes[neighbour].Atom.Element == ELEM_H {
			continue
		}
		w.removableH[i] = true
		w.virtualH[neighbour]++
	}
}

// identityKey summarises an atom for the initial refinement label.
func identityKey(node Node) string {
	return fmt.Sprintf("%s|%d|%d|%d", node.Atom.Element, node.Atom.Charge, node.Atom.Isotope, node.Hydrogens)
}

// implicitHydrogenLabel is the label standing in for an implicit (or
// absorbed explicit) hydrogen substituent.
var implicitHydrogenLabel = hashLabel("H|0|-1|0")

func hashLabel(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// refineLabels computes Morgan-style atom environment labels: every atom
// starts from its own identity and repeatedly absorbs the sorted labels of
// its neighbours. Two substituents with equal labels are structurally
// equivalent as far as this refinement can see.
func (w *smilesWriter) refineLabels() {
	n := len(w.mol.Nodes)
	labels := make([]uint64, n)
	for i, node := range w.mol.Nodes {
		labels[i] = hashLabel(identityKey(node))
	}

	rounds := n
	if rounds > 32 {
		rounds = 32
	}
	next := make([]uint64, n)
	buf := make([]uint64, 0, 8)
	for r := 0; r < rounds; r++ {
		for i := 0; i < n; i++ {
			buf = buf[:0]
			for _, nb := range w.adjFull[i] {
				buf = append(buf, labels[nb.node]^(uint64(nb.kind)*0x9e3779b97f4a7c15))
			}
			sort.Slice(buf, func(a, b int) bool { return buf[a] < buf[b] })
			h := fnv.New64a()
			var scratch [8]byte
			binary.LittleEndian.PutUint64(scratch[:], labels[i])
			_, _ = h.Write(scratch[:])
			for _, v := range buf {
				binary.LittleEndian.PutUint64(scratch[:], v)
				_, _ = h.Write(scratch[:])
			}
			next[i] = h.Sum64()
		}
		copy(labels, next)
	}
	w.labels = labels
}

// substituentLabels collects the environment labels of every substituent of
// center: graph neighbours (absorbed hydrogens as the implicit-H label) plus
// one implicit-H label per implicit hydrogen. exclude skips one neighbour.
func (w *smilesWriter) substituentLabels(center uint16, exclude int32) []uint64 {
	var keys []uint64
	for _, nb := range w.adjFull[center] {
		if int32(nb.node) == exclude {
			continue
		}
		if w.removableH[nb.node] {
			keys = append(keys, implicitHydrogenLabel)
		} else {
			keys = append(keys, w.labels[nb.node])
		}
	}
	for h := uint8(0); h < w.mol.Nodes[center].Hydrogens; h++ {
		keys = append(keys, implicitHydrogenLabel)
	}
	return keys
}

func hasDuplicateLabel(keys []uint64) bool {
	seen := make(map[uint64]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

// pruneChirality drops tetrahedral chirality tags from atoms with two
// equivalent substituents; such atoms are not chiral and the standard form
// omits the marking.
func (w *smilesWriter) pruneChirality() {
	n := len(w.mol.Nodes)
	w.dropChirality = make([]bool, n)
	for i, node := range w.mol.Nodes {
		if !node.Chirality.IsTetrahedral() {
			continue
		}
		w.dropChirality[i] = hasDuplicateLabel(w.substituentLabels(uint16(i), -1))
	}
}

// pruneDirectionalBonds demotes / and \ marks around double bonds that
// cannot be cis or trans (an end with two equivalent substituents).
func (w *smilesWriter) pruneDirectionalBonds() {
	for _, b := range w.mol.Bonds {
		if b.Kind != BOND_DOUBLE {
			continue
		}
		ambiguous := hasDuplicateLabel(w.substituentLabels(b.Source, int32(b.Target))) ||
			hasDuplicateLabel(w.substituentLabels(b.Target, int32(b.Source)))
		if !ambiguous {
			continue
		}
		for _, end := range [2]uint16{b.Source, b.Target} {
			for _, nb := range w.adjFull[end] {
				if nb.kind == BOND_UP || nb.kind == BOND_DOWN {
					w.kindOverride[makeEdgeKey(end, nb.node)] = BOND_SINGLE
				}
			}
		}
	}
}

// effectiveKind applies the directional demotion and the aromatic overlay to
// a stored bond kind.
func (w *smilesWriter) effectiveKind(u, v uint16, kind BondType) BondType {
	key := makeEdgeKey(u, v)
	if k, ok := w.kindOverride[key]; ok {
		kind = k
	}
	if w.aromaticEdges[key] {
		return BOND_AROMATIC
	}
	return kind
}

// computeKekuleOverlay combines the parsed aromaticity with Hückel-valid
// rings detected in the Kekulé (single/double) subgraph, so Kekulé-written
// input serialises in aromatic form without mutating the molecule.
func (w *smilesWriter) computeKekuleOverlay() {
	n := len(w.mol.Nodes)
	w.effAromatic = make([]bool, n)
	for i, node := range w.mol.Nodes {
		w.effAromatic[i] = node.Aromatic
	}
	for _, b := range w.mol.Bonds {
		if b.Kind == BOND_AROMATIC {
			w.aromaticEdges[makeEdgeKey(b.Source, b.Target)] = true
		}
	}

	adj := make([][]uint16, n)
	edges := make([]edgeKey, 0)
	seen := make(map[edgeKey]struct{})
	for u := 0; u < n; u++ {
		for _, nb := range w.adj[u] {
			kind := nb.kind
			if k, ok := w.kindOverride[makeEdgeKey(uint16(u), nb.node)]; ok {
				kind = k
			}
			if kind != BOND_SINGLE && kind != BOND_DOUBLE && kind != BOND_UP && kind != BOND_DOWN {
				continue
			}
			adj[u] = append(adj[u], nb.node)
			key := makeEdgeKey(uint16(u), nb.node)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				edges = append(edges, key)
			}
		}
	}

	for _, ring := range findRingsInSubgraph(adj, edges, n) {
		if !w.kekuleRingIsAromatic(ring.Nodes) {
			continue
		}
		size := len(ring.Nodes)
		for i := 0; i < size; i++ {
			a := ring.Nodes[i]
			b := ring.Nodes[(i+1)%size]
			w.effAromatic[a] = true
			w.aromaticEdges[makeEdgeKey(a, b)] = true
		}
	}
}

// kekuleRingIsAromatic checks a Kekulé-written ring against Hückel's rule:
// every ring bond single, double or directional, every atom eligible for
// aromaticity, and a 4n+2 pi-electron count (2 per ring double bond) with
// lone pairs filling in for atoms without a ring double bond. Whether single
// and double bonds alternate is not checked.
func (w *smilesWriter) kekuleRingIsAromatic(cycle []uint16) bool {
	size := len(cycle)
	if size < 3 {
		return false
	}
	for _, idx := range cycle {
		node := w.mol.Nodes[idx]
		if !node.Atom.Element.CanBeAromatic() || node.Aromatic {
			return false
		}
	}

	piElectrons := 0
	hasDouble := make([]bool, size)
	for i := 0; i < size; i++ {
		a := cycle[i]
		b := cycle[(i+1)%size]
		kind, found := w.heavyBondKind(a, b)
		if !found {
			return false
		}
		if k, ok := w.kindOverride[makeEdgeKey(a, b)]; ok {
			kind = k
		}
		switch kind {
		case BOND_DOUBLE:
			piElectrons += 2
			hasDouble[i] = true
			hasDouble[(i+1)%size] = true
		case BOND_SINGLE, BOND_UP, BOND_DOWN:
		default:
			return false
		}
	}

	for i := 0; i < size; i++ {
		if hasDouble[i] {
			continue
		}
		node := w.mol.Nodes[cycle[i]]
		charge := node.Atom.Charge
		hydrogens := node.Hydrogens + w.virtualH[cycle[i]]
		switch node.Atom.Element {
		case ELEM_C:
			if charge >= 0 {
				return false
			}
			piElectrons += 2
		case ELEM_N, ELEM_P:
			if hydrogens == 0 && charge >= 0 {
				return false
			}
			piElectrons += 2
		case ELEM_O, ELEM_S, ELEM_Se, ELEM_As, ELEM_Te:
			piElectrons += 2
		case ELEM_B:
			// empty p orbital contributes nothing
		default:
			return false
		}
	}

	if piElectrons < 0 || piElectrons > 255 {
		return false
	}
	return satisfiesHuckel(uint8(piElectrons))
}

// heavyBondKind looks up the stored bond kind between two heavy atoms.
func (w *smilesWriter) heavyBondKind(a, b uint16) (BondType, bool) {
	for _, nb := range w.adj[a] {
		if nb.node == b {
			return nb.kind, true
		}
	}
	return bondNone, false
}

// findBridges runs Tarjan's bridge algorithm over the heavy-atom graph.
// Aromatic bonds that are bridges are written with an explicit '-'.
func (w *smilesWriter) findBridges() {
	n := len(w.mol.Nodes)
	visited := make([]bool, n)
	disc := make([]int, n)
	low := make([]int, n)
	timer := 0

	var dfs func(u, parent uint16)
	dfs = func(u, parent uint16) {
		visited[u] = true
		disc[u] = timer
		low[u] = timer
		timer++
		for _, nb := range w.adj[u] {
			v := nb.node
			if v == parent {
				continue
			}
			if !visited[v] {
				dfs(v, u)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if low[v] > disc[u] {
					w.bridges[makeEdgeKey(u, v)] = true
				}
			} else if disc[v] < low[u] {
				low[u] = disc[v]
			}
		}
	}

	for u := 0; u < n; u++ {
		if !visited[u] && !w.removableH[u] {
			dfs(uint16(u), uint16(MaxNodes))
		}
	}
}

// collectComponent gathers the connected component of start in the
// heavy-atom graph, marking it visited, sorted by node index.
func (w *smilesWriter) collectComponent(start uint16, visited []bool) []uint16 {
	component := []uint16{start}
	visited[start] = true
	for head := 0; head < len(component); head++ {
		for _, nb := range w.adj[component[head]] {
			if !visited[nb.node] {
				visited[nb.node] = true
				component = append(component, nb.node)
			}
		}
	}
	sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
	return component
}

// bestStartingAtom prefers a non-carbon terminal, then any terminal, then a
// non-carbon atom of minimal heavy degree. Starting away from junction atoms
// keeps ring closures off the first written symbol.
func (w *smilesWriter) bestStartingAtom(component []uint16) uint16 {
	var terminals []uint16
	for _, idx := range component {
		if len(w.adj[idx]) == 1 {
			terminals = append(terminals, idx)
		}
	}

	if len(terminals) == 0 {
		minDegree := len(w.adj[component[0]])
		for _, idx := range component[1:] {
			if d := len(w.adj[idx]); d < minDegree {
				minDegree = d
			}
		}
		var candidates []uint16
		for _, idx := range component {
			if len(w.adj[idx]) == minDegree {
				candidates = append(candidates, idx)
			}
		}
		for _, c := range candidates {
			if w.mol.Nodes[c].Atom.Element != ELEM_C {
				return c
			}
		}
		return candidates[0]
	}

	for _, t := range terminals {
		if w.mol.Nodes[t].Atom.Element != ELEM_C {
			return t
		}
	}
	return terminals[0]
}

// buildSpanningTree runs a DFS from start, sorting neighbours by descending
// bond-order priority so higher-order bonds become chain edges and ring
// closures fall on single bonds where possible. Back edges to atoms still on
// the DFS stack allocate ring pair ids on both endpoints.
func (w *smilesWriter) buildSpanningTree(start uint16) {
	n := len(w.mol.Nodes)
	visited := make([]bool, n)
	onStack := make([]bool, n)

	var dfs func(current uint16, parent int32)
	dfs = func(current uint16, parent int32) {
		visited[current] = true
		onStack[current] = true

		neighbours := make([]wNeighbour, 0, len(w.adj[current]))
		for _, nb := range w.adj[current] {
			if int32(nb.node) != parent {
				neighbours = append(neighbours, nb)
			}
		}
		sort.SliceStable(neighbours, func(i, j int) bool {
			return neighbours[i].kind.orderPriority() > neighbours[j].kind.orderPriority()
		})

		for _, nb := range neighbours {
			if visited[nb.node] {
				// Only record the back edge while the neighbour is an
				// ancestor, so it is not counted twice from the other end.
				if onStack[nb.node] {
					id := w.nextPairID
					w.nextPairID++
					w.ringPairs[current] = append(w.ringPairs[current], id)
					w.ringPairs[nb.node] = append(w.ringPairs[nb.node], id)
					w.pairInfo[id] = ringPairInfo{a: current, b: nb.node, kind: nb.kind, forward: nb.forward}
				}
				continue
			}
			w.treeChildren[current] = append(w.treeChildren[current], nb)
			dfs(nb.node, int32(current))
		}

		onStack[current] = false
	}

	dfs(start, -1)
}

func (w *smilesWriter) subtreeSize(start uint16) int {
	size := 1
	for _, child := range w.treeChildren[start] {
		size += w.subtreeSize(child.node)
	}
	return size
}

// emit walks the spanning tree and writes the atom, its ring-closure digits,
// and its children, branches first in ascending subtree size so the main
// chain comes last.
func (w *smilesWriter) emit(current uint16) {
	w.writeAtom(current)

	for _, pairID := range w.ringPairs[current] {
		pair := w.pairInfo[pairID]
		rnum, assigned := w.pairToRnum[pairID]
		if !assigned {
			rnum = w.nextRnum
			w.nextRnum++
			w.pairToRnum[pairID] = rnum
		}
		other := pair.a
		if current == pair.a {
			other = pair.b
		}
		w.sb.WriteString(w.ringBondSymbol(current, other, pair))
		if rnum >= 10 {
			fmt.Fprintf(&w.sb, "%%%02d", rnum)
		} else {
			w.sb.WriteByte(byte('0' + rnum))
		}
	}

	children := make([]wNeighbour, len(w.treeChildren[current]))
	copy(children, w.treeChildren[current])
	sort.SliceStable(children, func(i, j int) bool {
		return w.subtreeSize(children[i].node) < w.subtreeSize(children[j].node)
	})

	for i, child := range children {
		last := i == len(children)-1
		if !last {
			w.sb.WriteByte('(')
		}
		w.sb.WriteString(w.treeBondSymbol(current, child))
		w.emit(child.node)
		if !last {
			w.sb.WriteByte(')')
		}
	}
}

// treeBondSymbol returns the symbol written before a tree child, empty when
// the bond is implied.
func (w *smilesWriter) treeBondSymbol(current uint16, child wNeighbour) string {
	kind := w.effectiveKind(current, child.node, child.kind)
	switch kind {
	case BOND_SINGLE:
		if w.effAromatic[current] && w.effAromatic[child.node] {
			return "-"
		}
		return ""
	case BOND_AROMATIC:
		if w.bridges[makeEdgeKey(current, child.node)] {
			return "-"
		}
		return ""
	case BOND_UP, BOND_DOWN:
		return directionalSymbol(kind, child.forward)
	default:
		return kind.Symbol()
	}
}

// ringBondSymbol returns the symbol written before a ring-closure digit.
// Explicit symbols on back edges are preserved so higher-order ring bonds
// round-trip.
func (w *smilesWriter) ringBondSymbol(current, other uint16, pair ringPairInfo) string {
	kind := w.effectiveKind(current, other, pair.kind)
	switch kind {
	case BOND_SINGLE:
		if w.effAromatic[current] && w.effAromatic[other] {
			return "-"
		}
		return ""
	case BOND_AROMATIC:
		return ""
	case BOND_UP, BOND_DOWN:
		forward := pair.forward
		if current != pair.a {
			forward = !forward
		}
		return directionalSymbol(kind, forward)
	default:
		return kind.Symbol()
	}
}

// directionalSymbol renders / or \, flipped when the bond is traversed
// against its stored orientation.
func directionalSymbol(kind BondType, forward bool) string {
	if forward {
		return kind.Symbol()
	}
	if kind == BOND_UP {
		return BOND_DOWN.Symbol()
	}
	return BOND_UP.Symbol()
}

// writeAtom emits one atom: bare when the organic-subset shortcut applies,
// bracketed otherwise with properties in the order isotope, element,
// chirality, hydrogens, charge, class.
func (w *smilesWriter) writeAtom(current uint16) {
	node := w.mol.Nodes[current]
	aromatic := w.effAromatic[current]
	totalH := node.Hydrogens + w.virtualH[current]

	chirality := node.Chirality
	if w.dropChirality[current] {
		chirality = ChiralityNone
	}

	bondOrderX2 := 0
	for _, nb := range w.adj[current] {
		kind := w.effectiveKind(current, nb.node, nb.kind)
		bondOrderX2 += int(kind.BondOrderX2ForImplicitH())
	}
	bondOrderSum := uint8(bondOrderX2 / 2)

	if node.Atom.IsOrganic() &&
		node.Atom.Charge == 0 &&
		!node.Atom.HasIsotope() &&
		chirality == ChiralityNone &&
		!node.HasClass() &&
		totalH == node.Atom.ImplicitHydrogens(bondOrderSum, aromatic) {
		symbol := node.Atom.Element.String()
		if aromatic {
			symbol = strings.ToLower(symbol)
		}
		w.sb.WriteString(symbol)
		return
	}

	w.sb.WriteByte('[')
	if node.Atom.HasIsotope() {
		fmt.Fprintf(&w.sb, "%d", node.Atom.Isotope)
	}
	symbol := node.Atom.Element.String()
	if aromatic && node.Atom.Element.CanBeAromatic() {
		symbol = strings.ToLower(symbol)
	}
	w.sb.WriteString(symbol)
	if chirality != ChiralityNone {
		w.sb.WriteString(chirality.String())
	}
	switch totalH {
	case 0:
	case 1:
		w.sb.WriteByte('H')
	default:
		fmt.Fprintf(&w.sb, "H%d", totalH)
	}
	switch c := node.Atom.Charge; {
	case c == 0:
	case c == 1:
		w.sb.WriteByte('+')
	case c == -1:
		w.sb.WriteByte('-')
	case c > 0:
		fmt.Fprintf(&w.sb, "+%d", c)
	default:
		fmt.Fprintf(&w.sb, "-%d", -c)
	}
	if node.HasClass() {
		fmt.Fprintf(&w.sb, ":%d", node.Class)
	}
	w.sb.WriteByte(']')
}
