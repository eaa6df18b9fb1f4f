// Package bigsmiles coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/09 14:27
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : bigsmiles.go
// @Software: GoLand
package bigsmiles

import (
	"strings"

	"github.com/cx-luo/go-bigsmiles/molecule"
)

// Segment is one piece of a BigSMILES string: either a plain SMILES
// fragment or a stochastic object.
type Segment interface {
	segment()
	String() string
}

// SmilesSegment is a plain SMILES fragment, e.g. the `CC` parts of
// `CC{[$]CC[$]}CC`.
type SmilesSegment struct {
	Molecule *molecule.Molecule
}

func (SmilesSegment) segment() {}

// String renders the fragment in canonical SMILES form.
func (s SmilesSegment) String() string {
	return s.Molecule.String()
}

// StochasticSegment is a stochastic object, e.g. `{[$]CC[$]}`.
type StochasticSegment struct {
	Object StochasticObject
}

func (StochasticSegment) segment() {}

// String renders the stochastic object with its fragments verbatim.
func (s StochasticSegment) String() string {
	return s.Object.String()
}

// BigSmiles is a parsed BigSMILES string: an ordered sequence of SMILES
// fragments and stochastic objects.
type BigSmiles struct {
	Segments []Segment
}

// PrefixSegments returns the segments preceding the first stochastic object
// (the initiator end group, e.g. the `CC` in `CC{[$]CC[$]}`). Empty when no
// stochastic object is present.
func (b *BigSmiles) PrefixSegments() []Segment {
	for i, seg := range b.Segments {
		if _, ok := seg.(StochasticSegment); ok {
			return b.Segments[:i]
		}
	}
	return nil
}

// SuffixSegments returns the segments following the last stochastic object
// (the terminator end group, e.g. the `CC` in `{[$]CC[$]}CC`). Empty when
// no stochastic object is present.
func (b *BigSmiles) SuffixSegments() []Segment {
	for i := len(b.Segments) - 1; i >= 0; i-- {
		if _, ok := b.Segments[i].(StochasticSegment); ok {
			return b.Segments[i+1:]
		}
	}
	return nil
}

// String renders the BigSMILES with outer SMILES segments canonicalised and
// the inner stochastic fragments verbatim. The result parses back to an
// equivalent BigSmiles.
func (b *BigSmiles) String() string {
	var sb strings.Builder
	for _, seg := range b.Segments {
		sb.WriteString(seg.String())
	}
	return sb.String()
}
