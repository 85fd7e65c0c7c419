package inventory

import (
	"testing"

	"github.com/jhoicas/MultiTienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify_BajoNoCritico(t *testing.T) {
	level := Classify(5, 10, DefaultStockPolicy())

	assert.True(t, level.Low)
	assert.False(t, level.Critical)
	assert.Equal(t, 5, level.Deficit)
}

func TestClassify_Critico(t *testing.T) {
	level := Classify(5, 12, DefaultStockPolicy())

	assert.True(t, level.Low)
	assert.True(t, level.Critical)
	assert.Equal(t, 7, level.Deficit)
}

func TestClassify_MitadExactaNoEsCritica(t *testing.T) {
	level := Classify(4, 8, DefaultStockPolicy())

	assert.True(t, level.Low)
	assert.False(t, level.Critical)
	assert.True(t, Classify(3, 8, DefaultStockPolicy()).Critical)
}

func TestClassify_EnElUmbralNoEsBajo(t *testing.T) {
	level := Classify(10, 10, DefaultStockPolicy())

	assert.False(t, level.Low)
	assert.False(t, level.Critical)
	assert.Zero(t, level.Deficit)
}

func TestClassify_SinUmbralNuncaEsBajo(t *testing.T) {
	assert.False(t, Classify(0, 0, DefaultStockPolicy()).Low)
}

func TestClassify_StockCeroEsCritico(t *testing.T) {
	level := Classify(0, 4, DefaultStockPolicy())

	assert.True(t, level.Critical)
	assert.Equal(t, 4, level.Deficit)
}

func TestClassify_PorcentajeDeTienda(t *testing.T) {
	policy := StockPolicy{LowStockPercent: 150, CriticalRatio: decimal.NewFromFloat(0.5)}

	// efectivo = 15
	level := Classify(12, 10, policy)
	assert.True(t, level.Low)
	assert.False(t, level.Critical)
	assert.Equal(t, 3, level.Deficit)

	// 50% reduce el umbral a 5
	assert.False(t, Classify(6, 10, StockPolicy{LowStockPercent: 50}).Low)
}

func TestClassify_DeficitRedondeaHaciaArriba(t *testing.T) {
	// efectivo = 7 * 50 / 100 = 3.5
	level := Classify(2, 7, StockPolicy{LowStockPercent: 50})

	assert.True(t, level.Low)
	assert.Equal(t, 2, level.Deficit)
}

func TestClassify_RatioConfigurable(t *testing.T) {
	policy := StockPolicy{LowStockPercent: 100, CriticalRatio: decimal.NewFromFloat(0.8)}

	assert.True(t, Classify(7, 10, policy).Critical)
	assert.False(t, Classify(8, 10, policy).Critical)
}

func TestApplyChange(t *testing.T) {
	next, ok := ApplyChange(5, -5)
	assert.True(t, ok)
	assert.Equal(t, 0, next)

	next, ok = ApplyChange(5, -6)
	assert.False(t, ok)
	assert.Equal(t, 5, next)
}

func TestReplayStock(t *testing.T) {
	txs := []*entity.InventoryTransaction{
		{QuantityChange: -3},
		{QuantityChange: 10},
		{QuantityChange: -2},
	}
	assert.Equal(t, 25, ReplayStock(20, txs))
	assert.Equal(t, 7, ReplayStock(7, nil))
}
