package bomstock_test

import (
	"context"
	"testing"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveComponents_OrdenDefinido(t *testing.T) {
	f := newFixture(t)

	components, err := f.resolver.ResolveComponents(context.Background(), burgerID)
	require.NoError(t, err)
	require.Len(t, components, 3)
	assert.Equal(t, bunID, components[0].ComponentID)
	assert.Equal(t, "Pan", components[0].ComponentName)
	assert.Equal(t, pattyID, components[1].ComponentID)
	assert.Equal(t, cheeseID, components[2].ComponentID)
	assert.True(t, components[2].Quantity.Equal(dec("2")))
	assert.Equal(t, "Tajada", components[2].UOMName)
}

func TestResolveComponents_SinBOMDevuelveListaVacia(t *testing.T) {
	f := newFixture(t)

	components, err := f.resolver.ResolveComponents(context.Background(), sodaID)
	require.NoError(t, err)
	assert.NotNil(t, components)
	assert.Empty(t, components)
}

func TestResolveComponents_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.ResolveComponents(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveComponents_VariasActivasGanaMenorSecuencia(t *testing.T) {
	f := newFixture(t)
	f.store.PutBOM(entity.BillOfMaterials{ID: "bom-burger-alt", CompanyID: companyID, ProductID: burgerID, Active: true, Sequence: 0},
		entity.BOMLine{ID: "alt-1", ComponentID: pattyID, Quantity: dec("2"), Sequence: 1},
	)

	components, err := f.resolver.ResolveComponents(context.Background(), burgerID)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, pattyID, components[0].ComponentID)
}

func TestResolveComponents_SoloListasInactivas(t *testing.T) {
	f := newFixture(t)
	f.store.PutBOM(entity.BillOfMaterials{ID: burgerBOMID, CompanyID: companyID, ProductID: burgerID, Active: false, Sequence: 1},
		entity.BOMLine{ID: "bl-1", ComponentID: bunID, Quantity: dec("1"), Sequence: 1},
	)

	components, err := f.resolver.ResolveComponents(context.Background(), burgerID)
	require.NoError(t, err)
	assert.Empty(t, components)
}
