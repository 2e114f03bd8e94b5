package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText_Latin1Auto(t *testing.T) {
	// "Café" en ISO-8859-1: é = 0xE9
	raw := []byte("categoria;nome;preco\nBebidas;Caf\xe9;10\n")
	text, err := decodeText(raw, "auto")
	require.NoError(t, err)
	assert.Contains(t, text, "Café")

	_, err = decodeText(raw, "utf-8")
	assert.Error(t, err)
}

func TestParseCatalog(t *testing.T) {
	csvText := "Categoria;Nome;Descrição;Preço;Estoque;Ativo\n" +
		"Bebidas;Café;Torrado;1.234,50;7;sim\n" +
		"Bebidas;Chá;;R$ 5,00;;não\n"

	rows, err := parseCatalog(csvText)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1234.50", rows[0].Price.StringFixed(2))
	assert.Equal(t, 7, rows[0].Stock)
	assert.True(t, rows[0].Active)
	assert.Equal(t, "5.00", rows[1].Price.StringFixed(2))
	assert.Equal(t, 0, rows[1].Stock)
	assert.False(t, rows[1].Active)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog("name,price\nX,1\n")
	assert.ErrorContains(t, err, "category")

	_, err = parseCatalog("category,name,price\nA,B,0\n")
	assert.ErrorContains(t, err, "línea 2")

	_, err = parseCatalog("category,name,price,stock\nA,B,1,-3\n")
	assert.Error(t, err)
}

func TestWriteSQL_Idempotente(t *testing.T) {
	rows, err := parseCatalog("category,name,price\nBebidas,D'Ávila,2.5\nbebidas,Água,1\n")
	require.NoError(t, err)

	var first, second strings.Builder
	require.NoError(t, writeSQL(&first, rows))
	require.NoError(t, writeSQL(&second, rows))

	sql := first.String()
	assert.Equal(t, sql, second.String())
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO categories"))
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO products"))
	assert.Contains(t, sql, "'D''Ávila'")
	assert.Contains(t, sql, "ON CONFLICT (LOWER(name)) DO NOTHING")
	assert.Contains(t, sql, "2.50")
}
