// Package molecule_test coding=utf-8
// @Project : go-bigsmiles
// @File    : elements_test.go
package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-luo/go-bigsmiles/molecule"
)

func TestOrganicSubsetData(t *testing.T) {
	assert.Equal(t, uint8(5), molecule.ELEM_B.AtomicNumber())
	assert.Equal(t, uint8(6), molecule.ELEM_C.AtomicNumber())
	assert.Equal(t, uint8(7), molecule.ELEM_N.AtomicNumber())
	assert.Equal(t, uint8(8), molecule.ELEM_O.AtomicNumber())
	assert.Equal(t, uint8(9), molecule.ELEM_F.AtomicNumber())
	assert.Equal(t, uint8(15), molecule.ELEM_P.AtomicNumber())
	assert.Equal(t, uint8(16), molecule.ELEM_S.AtomicNumber())
	assert.Equal(t, uint8(17), molecule.ELEM_Cl.AtomicNumber())
	assert.Equal(t, uint8(35), molecule.ELEM_Br.AtomicNumber())
	assert.Equal(t, uint8(53), molecule.ELEM_I.AtomicNumber())

	for _, e := range []molecule.AtomSymbol{
		molecule.ELEM_B, molecule.ELEM_C, molecule.ELEM_N, molecule.ELEM_O,
		molecule.ELEM_F, molecule.ELEM_P, molecule.ELEM_S, molecule.ELEM_Cl,
		molecule.ELEM_Br, molecule.ELEM_I,
	} {
		assert.True(t, e.IsOrganicSubset(), "%s should be organic subset", e)
		assert.NotEmpty(t, e.OrganicValences(), "%s should have organic valences", e)
	}
	assert.False(t, molecule.ELEM_Na.IsOrganicSubset())
	assert.Nil(t, molecule.ELEM_Na.OrganicValences())
}

func TestValenceElectrons(t *testing.T) {
	assert.Equal(t, uint8(3), molecule.ELEM_B.ValenceElectrons())
	assert.Equal(t, uint8(4), molecule.ELEM_C.ValenceElectrons())
	assert.Equal(t, uint8(5), molecule.ELEM_N.ValenceElectrons())
	assert.Equal(t, uint8(6), molecule.ELEM_O.ValenceElectrons())
	assert.Equal(t, uint8(5), molecule.ELEM_P.ValenceElectrons())
	assert.Equal(t, uint8(6), molecule.ELEM_S.ValenceElectrons())
	assert.Equal(t, uint8(5), molecule.ELEM_As.ValenceElectrons())
	assert.Equal(t, uint8(6), molecule.ELEM_Se.ValenceElectrons())
	assert.Equal(t, uint8(6), molecule.ELEM_Te.ValenceElectrons())
}

func TestAromaticEligibility(t *testing.T) {
	aromatic := []molecule.AtomSymbol{
		molecule.ELEM_B, molecule.ELEM_C, molecule.ELEM_N, molecule.ELEM_O,
		molecule.ELEM_P, molecule.ELEM_S, molecule.ELEM_Se, molecule.ELEM_As,
		molecule.ELEM_Te, molecule.ELEM_WILDCARD,
	}
	for _, e := range aromatic {
		assert.True(t, e.CanBeAromatic(), "%s should be aromatic-eligible", e)
	}
	for _, e := range []molecule.AtomSymbol{
		molecule.ELEM_F, molecule.ELEM_Cl, molecule.ELEM_H, molecule.ELEM_Fe, molecule.ELEM_Si,
	} {
		assert.False(t, e.CanBeAromatic(), "%s should not be aromatic-eligible", e)
	}
}

func TestWildcardData(t *testing.T) {
	assert.Equal(t, uint8(0), molecule.ELEM_WILDCARD.AtomicNumber())
	assert.Equal(t, 0.0, molecule.ELEM_WILDCARD.StandardMass())
	assert.Equal(t, uint8(0), molecule.ELEM_WILDCARD.ValenceElectrons())
	assert.Equal(t, "*", molecule.ELEM_WILDCARD.String())
}

func TestElementFromString(t *testing.T) {
	e, err := molecule.ElementFromString("Cl")
	require.NoError(t, err)
	assert.Equal(t, molecule.ELEM_Cl, e)

	e, err = molecule.ElementFromString("*")
	require.NoError(t, err)
	assert.Equal(t, molecule.ELEM_WILDCARD, e)

	_, err = molecule.ElementFromString("Xy")
	var atomErr *molecule.AtomError
	require.ErrorAs(t, err, &atomErr)
	assert.Equal(t, molecule.AtomErrUnknownElement, atomErr.Kind)
}

func TestStandardMassIsPositive(t *testing.T) {
	for _, e := range []molecule.AtomSymbol{
		molecule.ELEM_C, molecule.ELEM_N, molecule.ELEM_O, molecule.ELEM_H, molecule.ELEM_Fe, molecule.ELEM_Og,
	} {
		assert.Greater(t, e.StandardMass(), 0.0, "%s should have positive mass", e)
	}
}

func TestIsotopeMass(t *testing.T) {
	assert.InDelta(t, 12.0, molecule.IsotopeMass(molecule.ELEM_C, 12), 1e-5)
	assert.InDelta(t, 13.00335, molecule.IsotopeMass(molecule.ELEM_C, 13), 1e-4)
	assert.InDelta(t, 2.01410, molecule.IsotopeMass(molecule.ELEM_H, 2), 1e-4)
	// unknown isotope falls back to the mass number
	assert.InDelta(t, 99.0, molecule.IsotopeMass(molecule.ELEM_C, 99), 1e-5)
}

func TestAtomMass(t *testing.T) {
	c, err := molecule.NewAtom(molecule.ELEM_C, 0, molecule.IsotopeUnspecified)
	require.NoError(t, err)
	assert.InDelta(t, 12.011, c.Mass(), 1e-3)

	c13, err := molecule.NewAtom(molecule.ELEM_C, 0, 13)
	require.NoError(t, err)
	assert.InDelta(t, 13.00335, c13.Mass(), 1e-4)
}
