// Package bigsmiles coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/09 11:14
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : stochastic.go
// @Software: GoLand
package bigsmiles

import (
	"strings"

	"github.com/cx-luo/go-bigsmiles/molecule"
)

// StochasticFragment is one [bd]SMILES[bd] unit inside a stochastic object:
// a repeat unit (before ';') or an end group (after ';').
//
// The atom ordering within the SMILES string is semantically significant in
// BigSMILES: the left bond descriptor connects to the first written atom
// (index 0) and the right one to the last atom on the main chain (the last
// atom at parenthesis depth 0). Re-canonicalising `CC(C)` to `CCC` would
// silently change which atoms carry the descriptors, so SmilesRaw keeps the
// original text verbatim for display; Molecule, LeftAtom and RightAtom are
// derived for structural analysis.
type StochasticFragment struct {
	Left      BondDescriptor
	SmilesRaw string
	Molecule  *molecule.Molecule
	LeftAtom  int // always 0: the first atom written
	RightAtom int // last main-chain atom, e.g. 1 for "CC(C)"
	Right     BondDescriptor
}

// String renders the fragment with its raw SMILES text untouched.
func (f StochasticFragment) String() string {
	return f.Left.String() + f.SmilesRaw + f.Right.String()
}

// StochasticObject is a BigSMILES stochastic object {...}: a statistical
// mixture of repeat units describing a polymer.
//
//	{ [left_end]? [bd]smiles[bd] , ... ; [bd]smiles[bd] , ... [right_end]? }
//	               ^── repeat units ──^   ^── end groups ──^
//
// The optional terminals describe how the object connects to the
// surrounding molecule; an absent terminal means no outer connection on
// that side.
type StochasticObject struct {
	LeftEnd     *BondDescriptor
	RepeatUnits []StochasticFragment
	EndGroups   []StochasticFragment
	RightEnd    *BondDescriptor
}

// String renders the object as written: terminals, comma-separated repeat
// units, and end groups after a semicolon.
func (o StochasticObject) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	if o.LeftEnd != nil {
		sb.WriteString(o.LeftEnd.String())
	}
	for i, ru := range o.RepeatUnits {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(ru.String())
	}
	if len(o.EndGroups) > 0 {
		sb.WriteByte(';')
		for i, eg := range o.EndGroups {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(eg.String())
		}
	}
	if o.RightEnd != nil {
		sb.WriteString(o.RightEnd.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
