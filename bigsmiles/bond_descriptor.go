// Package bigsmiles implements the BigSMILES polymer notation: SMILES
// extended with stochastic repeat-unit objects {...}.
// coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/09 10:02
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : bond_descriptor.go
// @Software: GoLand
package bigsmiles

import (
	"fmt"
	"strings"
)

// BondDescriptorKind is the kind of a BigSMILES bond descriptor. Bond
// descriptors appear inside stochastic objects and state how repeat units
// connect to each other and to terminal groups.
type BondDescriptorKind uint8

const (
	// NoBond is `[]`: the stochastic object has no outer connection.
	NoBond BondDescriptorKind = iota
	// NonDirectional is `[$]`: pairs with any `[$]` of the same index.
	NonDirectional
	// Head is `[<]`: pairs with a Tail descriptor.
	Head
	// Tail is `[>]`: pairs with a Head descriptor.
	Tail
)

func (k BondDescriptorKind) String() string {
	switch k {
	case NonDirectional:
		return "$"
	case Head:
		return "<"
	case Tail:
		return ">"
	}
	return ""
}

// IndexUnspecified marks a bond descriptor without a numeric index.
const IndexUnspecified = -1

// BondDescriptor is a BigSMILES bond descriptor: `[]`, `[$]`, `[<]`, `[>]`,
// optionally with a numeric index as in `[$1]` or `[<2]`.
type BondDescriptor struct {
	Kind  BondDescriptorKind
	Index int // IndexUnspecified when absent
}

// HasIndex reports whether a numeric index is present.
func (d BondDescriptor) HasIndex() bool {
	return d.Index != IndexUnspecified
}

// String renders the descriptor as written, e.g. "[$1]".
func (d BondDescriptor) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(d.Kind.String())
	if d.HasIndex() {
		fmt.Fprintf(&sb, "%d", d.Index)
	}
	sb.WriteByte(']')
	return sb.String()
}
