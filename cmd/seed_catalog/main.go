// seed_catalog genera un script SQL idempotente para poblar categorías y productos
// a partir de un CSV exportado de planilla (UTF-8 o ISO-8859-1, separador "," o ";").
//
// Uso: go run ./cmd/seed_catalog [-encoding auto|utf-8|latin1] [-out seed.sql] catalogo.csv
//
// Columnas (encabezado obligatorio, sin importar el orden):
// categoria, nome, descricao, preco, estoque, ativo. También se aceptan los nombres
// en español o inglés (category, name, description, price, stock, active).
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// namespace de los UUID deterministas: el mismo CSV produce siempre los mismos IDs.
var namespace = uuid.MustParse("6f1c2b0e-8d4a-4f5e-9c3b-2a7d1e0f4b6c")

var columnAliases = map[string]string{
	"categoria": "category", "category": "category", "categoría": "category",
	"nome": "name", "nombre": "name", "name": "name", "produto": "name", "producto": "name",
	"descricao": "description", "descrição": "description", "descripcion": "description", "descripción": "description", "description": "description",
	"preco": "price", "preço": "price", "precio": "price", "price": "price",
	"estoque": "stock", "stock": "stock",
	"ativo": "active", "activo": "active", "active": "active",
}

type catalogRow struct {
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Active      bool
}

func main() {
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf-8 o latin1")
	outPath := flag.String("out", "", "archivo SQL de salida (por defecto stdout)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-encoding auto|utf-8|latin1] [-out seed.sql] catalogo.csv")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	text, err := decodeText(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseCatalog(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d productos\n", len(rows))
}

// decodeText convierte el CSV a UTF-8. En modo auto, un archivo que no es UTF-8 válido
// se interpreta como ISO-8859-1 (exportación típica de planillas en Windows).
func decodeText(raw []byte, encoding string) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("el archivo no es UTF-8 válido")
		}
		return string(raw), nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return decodeLatin1(raw)
	case "auto", "":
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return decodeLatin1(raw)
	}
	return "", fmt.Errorf("codificación no soportada: %s", encoding)
}

func decodeLatin1(raw []byte) (string, error) {
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseCatalog lee las filas del CSV. El separador se detecta por el encabezado.
func parseCatalog(text string) ([]catalogRow, error) {
	header, _, _ := strings.Cut(text, "\n")
	r := csv.NewReader(strings.NewReader(text))
	if strings.Count(header, ";") > strings.Count(header, ",") {
		r.Comma = ';'
	}
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV vacío")
	}

	cols := make(map[string]int)
	for i, h := range records[0] {
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	for _, required := range []string{"category", "name", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]catalogRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		row := catalogRow{
			Category:    get(rec, "category"),
			Name:        get(rec, "name"),
			Description: get(rec, "description"),
			Active:      true,
		}
		if row.Category == "" || row.Name == "" {
			return nil, fmt.Errorf("línea %d: categoría y nombre son obligatorios", line)
		}
		price, err := parsePrice(get(rec, "price"))
		if err != nil || !price.IsPositive() {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, get(rec, "price"))
		}
		row.Price = price
		if s := get(rec, "stock"); s != "" {
			if row.Stock, err = strconv.Atoi(s); err != nil || row.Stock < 0 {
				return nil, fmt.Errorf("línea %d: estoque inválido %q", line, s)
			}
		}
		if s := strings.ToLower(get(rec, "active")); s != "" {
			row.Active = !(s == "0" || s == "false" || s == "nao" || s == "não" || s == "no" || s == "n")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parsePrice acepta "1234.56", "1234,56" y "1.234,56".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Round(2), nil
}

// writeSQL escribe inserts idempotentes: categorías por nombre, productos por ID determinista.
// Un producto existente no se modifica (su stock lo gobiernan las ventas).
func writeSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial (generado por seed_catalog)\n")
	b.WriteString("BEGIN;\n\n")

	seen := make(map[string]bool)
	b.WriteString("-- 1. Categorías\n")
	for _, r := range rows {
		key := strings.ToLower(r.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Fprintf(&b, "INSERT INTO categories (id, name) VALUES ('%s', '%s')\nON CONFLICT (LOWER(name)) DO NOTHING;\n",
			uuid.NewSHA1(namespace, []byte("category/"+key)), escapeSQL(r.Category))
	}

	b.WriteString("\n-- 2. Productos\n")
	for _, r := range rows {
		id := uuid.NewSHA1(namespace, []byte("product/"+strings.ToLower(r.Category)+"/"+strings.ToLower(r.Name)))
		fmt.Fprintf(&b, "INSERT INTO products (id, name, description, price, stock, category_id, active)\n")
		fmt.Fprintf(&b, "SELECT '%s', '%s', '%s', %s, %d, id, %t FROM categories WHERE LOWER(name) = LOWER('%s')\n",
			id, escapeSQL(r.Name), escapeSQL(r.Description), r.Price.StringFixed(2), r.Stock, r.Active, escapeSQL(r.Category))
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}
	b.WriteString("\nCOMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
