package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts_ConCabecera(t *testing.T) {
	in := "sku,name,category,unit_price,stock,reorder_threshold,location\n" +
		"CAF-1,Café molido,Bebidas,12.50,40,10,A1\n" +
		"TEV-2, Té verde ,Bebidas,6.9,8,10\n"

	products, err := parseProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "CAF-1", products[0].SKU)
	assert.Equal(t, "12.5", products[0].UnitPrice.String())
	assert.Equal(t, 40, products[0].CurrentStock)
	assert.Equal(t, "A1", products[0].Location)
	assert.Equal(t, "Té verde", products[1].Name)
	assert.Empty(t, products[1].Location)
}

func TestParseProducts_Latin1(t *testing.T) {
	// "Café" en ISO-8859-1: é = 0xE9
	in := []byte("CAF-1,Caf\xe9,Bebidas,1,1,0\n")
	products, err := parseProducts(bytes.NewReader(in))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Café", products[0].Name)
}

func TestParseProducts_Errores(t *testing.T) {
	_, err := parseProducts(strings.NewReader("CAF-1,Café,Bebidas,abc,1,0\n"))
	assert.ErrorContains(t, err, "línea 1")

	_, err = parseProducts(strings.NewReader("CAF-1,Café,Bebidas\n"))
	assert.ErrorContains(t, err, "6 columnas")
}
