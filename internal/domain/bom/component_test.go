package bom_test

import (
	"testing"

	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectActive_IgnoraInactivas(t *testing.T) {
	boms := []entity.BillOfMaterials{
		{ID: "b1", Active: false, Sequence: 1},
		{ID: "b2", Active: true, Sequence: 5},
	}
	picked := bom.SelectActive(boms)
	require.NotNil(t, picked)
	assert.Equal(t, "b2", picked.ID)
}

// Con varias listas activas el desempate es explícito: menor secuencia, luego menor ID.
func TestSelectActive_DesempateDeterminista(t *testing.T) {
	boms := []entity.BillOfMaterials{
		{ID: "b9", Active: true, Sequence: 10},
		{ID: "b3", Active: true, Sequence: 1},
		{ID: "b2", Active: true, Sequence: 1},
	}
	assert.Equal(t, "b2", bom.SelectActive(boms).ID)
}

func TestSelectActive_SinActivas(t *testing.T) {
	assert.Nil(t, bom.SelectActive(nil))
	assert.Nil(t, bom.SelectActive([]entity.BillOfMaterials{{ID: "b1"}}))
}

func TestComponentsFromLines_RespetaSecuencia(t *testing.T) {
	lines := []entity.BOMLine{
		{ComponentID: "c2", ComponentName: "Tapa", Quantity: dec("1"), Sequence: 20},
		{ComponentID: "c1", ComponentName: "Vaso", Quantity: dec("1"), Sequence: 10},
		{ComponentID: "c3", ComponentName: "Pitillo", Quantity: dec("2"), Sequence: 20},
	}
	got := bom.ComponentsFromLines(lines)
	require.Len(t, got, 3)
	assert.Equal(t, "c1", got[0].ComponentID)
	assert.Equal(t, "c2", got[1].ComponentID)
	assert.Equal(t, "c3", got[2].ComponentID, "a igual secuencia se conserva el orden de llegada")
}
