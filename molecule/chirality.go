// Package molecule coding=utf-8
// @Project : go-bigsmiles
// @File    : chirality.go
package molecule

import "fmt"

// Chirality is the chirality class of a bracket atom, per the OpenSMILES
// specification. The zero value means "no chirality", so the optional form
// fits in a single byte.
type Chirality uint8

const (
	ChiralityNone Chirality = 0

	// Tetrahedral
	ChiralityTH1 Chirality = 1
	ChiralityTH2 Chirality = 2
	// Allenal
	ChiralityAL1 Chirality = 3
	ChiralityAL2 Chirality = 4
	// Square planar
	ChiralitySP1 Chirality = 5
	ChiralitySP2 Chirality = 6
	ChiralitySP3 Chirality = 7
	// Trigonal bipyramidal: TB1..TB20 occupy 8..27
	ChiralityTB1 Chirality = 8
	// Octahedral: OH1..OH30 occupy 28..57
	ChiralityOH1 Chirality = 28
)

const (
	chiralityTB20 = ChiralityTB1 + 19
	chiralityOH30 = ChiralityOH1 + 29
)

// ChiralityTB returns the trigonal-bipyramidal class for n in 1..20.
func ChiralityTB(n uint8) (Chirality, bool) {
	if n < 1 || n > 20 {
		return ChiralityNone, false
	}
	return ChiralityTB1 + Chirality(n-1), true
}

// ChiralityOH returns the octahedral class for n in 1..30.
func ChiralityOH(n uint8) (Chirality, bool) {
	if n < 1 || n > 30 {
		return ChiralityNone, false
	}
	return ChiralityOH1 + Chirality(n-1), true
}

// IsTetrahedral reports whether c is one of the tetrahedral classes.
func (c Chirality) IsTetrahedral() bool {
	return c == ChiralityTH1 || c == ChiralityTH2
}

// String renders the chirality as written inside a bracket atom.
func (c Chirality) String() string {
	switch c {
	case ChiralityNone:
		return ""
	case ChiralityTH1:
		return "@"
	case ChiralityTH2:
		return "@@"
	case ChiralityAL1:
		return "@AL1"
	case ChiralityAL2:
		return "@AL2"
	case ChiralitySP1:
		return "@SP1"
	case ChiralitySP2:
		return "@SP2"
	case ChiralitySP3:
		return "@SP3"
	}
	if c >= ChiralityTB1 && c <= chiralityTB20 {
		return fmt.Sprintf("@TB%d", c-ChiralityTB1+1)
	}
	if c >= ChiralityOH1 && c <= chiralityOH30 {
		return fmt.Sprintf("@OH%d", c-ChiralityOH1+1)
	}
	return fmt.Sprintf("@?%d", uint8(c))
}
