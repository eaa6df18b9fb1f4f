// Package molecule coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/02 15:02
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : node.go
// @Software: GoLand
package molecule

// ClassUnspecified marks a node without an atom-class label.
const ClassUnspecified int16 = -1

// Node is a resolved atom in the molecular graph: the atom itself plus the
// graph-level attributes written in the SMILES notation.
type Node struct {
	Atom      Atom
	Aromatic  bool
	Hydrogens uint8 // 0 to 9
	Class     int16 // 0 to 999, or ClassUnspecified
	Chirality Chirality
}

// NewNode validates and builds a Node.
func NewNode(atom Atom, aromatic bool, hydrogens uint8, class int16, chirality Chirality) (Node, error) {
	if hydrogens > 9 {
		return Node{}, &NodeError{Kind: NodeErrInvalidHydrogen, Hydrogens: hydrogens}
	}
	if class != ClassUnspecified && (class < 0 || class > 999) {
		return Node{}, &NodeError{Kind: NodeErrInvalidClass, Class: int(class)}
	}
	if aromatic && !atom.Element.CanBeAromatic() {
		return Node{}, &NodeError{Kind: NodeErrInvalidAromaticElement, Element: atom.Element}
	}
	return Node{
		Atom:      atom,
		Aromatic:  aromatic,
		Hydrogens: hydrogens,
		Class:     class,
		Chirality: chirality,
	}, nil
}

// HasClass reports whether an atom-class label is present.
func (n Node) HasClass() bool {
	return n.Class != ClassUnspecified
}

// nodeBuilder accumulates optional node attributes during parsing. The
// hydrogen count stays unset for bare organic-subset atoms and is derived
// from the bond-order sum at build time.
type nodeBuilder struct {
	atom         Atom
	aromatic     bool
	hydrogens    uint8
	hasHydrogens bool
	class        int16
	chirality    Chirality
}

// newNodeBuilder validates the atom-level attributes eagerly so that errors
// carry the position of the offending token, not of the final build.
// hydrogens < 0 means "derive at build time".
func newNodeBuilder(element AtomSymbol, charge int8, isotope int16, aromatic bool,
	hydrogens int16, class int16, chirality Chirality) (nodeBuilder, error) {
	atom, err := NewAtom(element, charge, isotope)
	if err != nil {
		return nodeBuilder{}, &NodeError{Kind: NodeErrAtom, Cause: err}
	}
	b := nodeBuilder{
		atom:      atom,
		aromatic:  aromatic,
		class:     class,
		chirality: chirality,
	}
	if hydrogens >= 0 {
		b.hydrogens = uint8(hydrogens)
		b.hasHydrogens = true
	}
	return b, nil
}

// build finalises the node, deriving implicit hydrogens from the bond-order
// sum when no explicit count was written.
func (b nodeBuilder) build(bondOrderSum uint8) (Node, error) {
	h := b.hydrogens
	if !b.hasHydrogens {
		h = b.atom.ImplicitHydrogens(bondOrderSum, b.aromatic)
	}
	return NewNode(b.atom, b.aromatic, h, b.class, b.chirality)
}
