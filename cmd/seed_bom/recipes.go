package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// recipeNamespace raíz de los UUID deterministas; reimportar el mismo CSV actualiza en vez de duplicar.
var recipeNamespace = uuid.MustParse("8f7c2d0e-5a41-4b8e-9a1f-3c6d2b7e4f10")

type component struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	UOM      string
}

type recipe struct {
	SKU        string
	Name       string
	Price      decimal.Decimal
	Components []component
}

// decodeInput envuelve el CSV con el decodificador de la codificación indicada.
func decodeInput(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", "utf8":
		return r, nil
	case "windows1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "latin1", "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", encoding)
}

var header = []string{"parent_sku", "parent_name", "parent_price", "component_sku", "component_name", "quantity", "uom"}

// parseRecipes agrupa las filas por producto padre, conservando el orden de aparición.
func parseRecipes(r io.Reader, delimiter rune) ([]recipe, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(first[i], "\ufeff")), col) {
			return nil, fmt.Errorf("columna %d: se esperaba %q, se encontró %q", i+1, col, first[i])
		}
	}

	var out []recipe
	index := make(map[string]int)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		parentSKU, componentSKU := rec[0], rec[3]
		if parentSKU == "" || componentSKU == "" {
			return nil, fmt.Errorf("fila %d: parent_sku y component_sku son requeridos", row)
		}
		if parentSKU == componentSKU {
			return nil, fmt.Errorf("fila %d: el producto %s no puede ser componente de sí mismo", row, parentSKU)
		}
		qty, err := parseDecimal(rec[5])
		if err != nil || !qty.IsPositive() {
			return nil, fmt.Errorf("fila %d: cantidad inválida %q", row, rec[5])
		}

		i, ok := index[parentSKU]
		if !ok {
			price := decimal.Zero
			if rec[2] != "" {
				if price, err = parseDecimal(rec[2]); err != nil {
					return nil, fmt.Errorf("fila %d: precio inválido %q", row, rec[2])
				}
			}
			out = append(out, recipe{SKU: parentSKU, Name: nonEmpty(rec[1], parentSKU), Price: price})
			i = len(out) - 1
			index[parentSKU] = i
		}
		out[i].Components = append(out[i].Components, component{
			SKU:      componentSKU,
			Name:     nonEmpty(rec[4], componentSKU),
			Quantity: qty,
			UOM:      rec[6],
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("el CSV no tiene filas de recetas")
	}
	return out, nil
}

// parseDecimal acepta coma decimal ("1,5") además de punto.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func recipeID(parts ...string) string {
	return uuid.NewSHA1(recipeNamespace, []byte(strings.Join(parts, "|"))).String()
}

// renderSQL genera un script transaccional: productos, una lista activa por padre y sus líneas.
func renderSQL(companyID string, recipes []recipe) string {
	var b strings.Builder
	b.WriteString("-- Listas de materiales para el POS\n")
	b.WriteString("BEGIN;\n\n")

	// Componentes únicos en orden estable
	components := make(map[string]string)
	for _, r := range recipes {
		for _, c := range r.Components {
			if _, ok := components[c.SKU]; !ok {
				components[c.SKU] = c.Name
			}
		}
	}
	skus := make([]string, 0, len(components))
	for sku := range components {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	b.WriteString("-- 1. Componentes\n")
	for _, sku := range skus {
		fmt.Fprintf(&b, "INSERT INTO products (id, company_id, sku, name) VALUES ('%s', '%s', '%s', '%s')\n",
			recipeID(companyID, "product", sku), companyID, escapeSQL(sku), escapeSQL(components[sku]))
		b.WriteString("ON CONFLICT (company_id, sku) DO NOTHING;\n")
	}

	b.WriteString("\n-- 2. Productos vendidos por lista de materiales\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "INSERT INTO products (id, company_id, sku, name, price, use_bom_in_pos) VALUES ('%s', '%s', '%s', '%s', %s, true)\n",
			recipeID(companyID, "product", r.SKU), companyID, escapeSQL(r.SKU), escapeSQL(r.Name), r.Price.String())
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, use_bom_in_pos = true, updated_at = now();\n")
	}

	b.WriteString("\n-- 3. Listas de materiales y líneas\n")
	for _, r := range recipes {
		bomID := recipeID(companyID, "bom", r.SKU)
		fmt.Fprintf(&b, "INSERT INTO bill_of_materials (id, company_id, product_id, code, active, sequence)\n")
		fmt.Fprintf(&b, "SELECT '%s', '%s', id, '%s', true, 10 FROM products WHERE company_id = '%s' AND sku = '%s'\n",
			bomID, companyID, escapeSQL(r.SKU), companyID, escapeSQL(r.SKU))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET active = true, updated_at = now();\n")
		fmt.Fprintf(&b, "DELETE FROM bom_lines WHERE bom_id = '%s';\n", bomID)
		for i, c := range r.Components {
			uomName := "NULL"
			if c.UOM != "" {
				uomName = "'" + escapeSQL(c.UOM) + "'"
			}
			fmt.Fprintf(&b, "INSERT INTO bom_lines (id, bom_id, component_id, quantity, uom_name, sequence)\n")
			fmt.Fprintf(&b, "SELECT '%s', '%s', id, %s, %s, %d FROM products WHERE company_id = '%s' AND sku = '%s';\n",
				recipeID(bomID, "line", fmt.Sprint(i), c.SKU), bomID, c.Quantity.String(), uomName, (i+1)*10,
				companyID, escapeSQL(c.SKU))
		}
	}

	b.WriteString("\nCOMMIT;\n")
	return b.String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
