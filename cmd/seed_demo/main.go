// seed_demo genera un script SQL de datos de demostración (componentes,
// productos y BOM) a partir de un CSV exportado del inventario histórico.
//
// Formato del CSV (cabecera incluida, puede venir en ISO-8859-1):
//
//	tipo,nombre,sku,stock,unidad,umbral,producto,componente,cantidad_requerida
//	component,Aceite esencial,,1200.5,ml,200,,,
//	product,Vela Lavanda,VL-001,12,,,,,
//	bom,,,,,,Vela Lavanda,Aceite esencial,15
//
// Uso: go run ./cmd/seed_demo [ruta/inventario.csv]
// Por defecto busca inventario.csv en el directorio actual.
// Escribe: migrations/002_seed_demo.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "inventario.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	// Los exports viejos vienen en ISO-8859-1; convertir solo si hace falta.
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Decodificar ISO-8859-1: %v\n", err)
			os.Exit(1)
		}
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV vacío")
		os.Exit(1)
	}

	type bomRow struct{ product, component, qty string }
	var components, products []string
	var bomRows []bomRow

	for _, rec := range records[1:] { // salta cabecera
		if len(rec) < 9 {
			continue
		}
		switch strings.TrimSpace(rec[0]) {
		case "component":
			components = append(components, fmt.Sprintf(
				"INSERT INTO components (id, name, current_stock, unit_type, safety_stock_threshold)\nVALUES (gen_random_uuid(), '%s', %s, '%s', %s);",
				escapeSQL(strings.TrimSpace(rec[1])),
				defaultNum(rec[3]), escapeSQL(strings.TrimSpace(rec[4])), defaultNum(rec[5]),
			))
		case "product":
			products = append(products, fmt.Sprintf(
				"INSERT INTO products (id, name, sku, current_stock)\nVALUES (gen_random_uuid(), '%s', '%s', %s);",
				escapeSQL(strings.TrimSpace(rec[1])),
				escapeSQL(strings.TrimSpace(rec[2])), defaultNum(rec[3]),
			))
		case "bom":
			bomRows = append(bomRows, bomRow{
				product:   strings.TrimSpace(rec[6]),
				component: strings.TrimSpace(rec[7]),
				qty:       defaultNum(rec[8]),
			})
		}
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "002_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos de demostración: inventario con BOM\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " por cmd/seed_demo\n\n")

	out.WriteString("-- 1. Materias primas\n")
	for _, stmt := range components {
		out.WriteString(stmt + "\n")
	}
	out.WriteString("\n-- 2. Productos terminados\n")
	for _, stmt := range products {
		out.WriteString(stmt + "\n")
	}

	// Las líneas de BOM resuelven producto y componente por nombre.
	out.WriteString("\n-- 3. Líneas de BOM\n")
	for _, b := range bomRows {
		fmt.Fprintf(out, "INSERT INTO bom_lines (id, product_id, component_id, quantity_required)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), p.id, c.id, %s FROM products p, components c WHERE p.name = '%s' AND c.name = '%s'\n",
			b.qty, escapeSQL(b.product), escapeSQL(b.component))
		out.WriteString("ON CONFLICT (product_id, component_id) DO UPDATE SET quantity_required = EXCLUDED.quantity_required;\n")
	}

	fmt.Printf("Generado %s: %d componentes, %d productos, %d líneas de BOM\n",
		outPath, len(components), len(products), len(bomRows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func defaultNum(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	return s
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
