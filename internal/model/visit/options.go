package visit

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option is one selectable answer for a multiple-choice step. ID carries the
// secondary catalog identifier persisted alongside the name where the backing
// system requires one (provincias, tipos de venta).
type Option struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id,omitempty"`
}

// Catalog maps a short user-entered code ("1".."6") to an option.
type Catalog map[string]Option

// Lookup resolves a trimmed code by exact membership.
func (c Catalog) Lookup(code string) (Option, bool) {
	opt, ok := c[strings.TrimSpace(code)]
	return opt, ok
}

// Codes returns the catalog codes in ascending order.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Menu renders the catalog as a numbered WhatsApp option list.
func (c Catalog) Menu() string {
	var b strings.Builder
	for i, code := range c.Codes() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s", keycap(code), c[code].Name)
	}
	return b.String()
}

// RangeLabel renders the accepted code span, e.g. "1-6".
func (c Catalog) RangeLabel() string {
	codes := c.Codes()
	if len(codes) == 0 {
		return ""
	}
	return codes[0] + "-" + codes[len(codes)-1]
}

// keycap turns a single-digit code into its emoji keycap form.
func keycap(code string) string {
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		return code + "️⃣"
	}
	return code
}

// Catalogs aggregates the four choice-field tables.
type Catalogs struct {
	Provincias Catalog `yaml:"provincias"`
	Servicios  Catalog `yaml:"servicios"`
	TiposVenta Catalog `yaml:"tipos_venta"`
	TiposPago  Catalog `yaml:"tipos_pago"`
}

// DefaultCatalogs returns the built-in option tables.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		Provincias: Catalog{
			"1": {Name: "Guayas", ID: "96051UCSRPobUpMUs0Ga"},
			"2": {Name: "Pichincha", ID: "96051UCSRPobUpMUs1Pb"},
			"3": {Name: "Manabí", ID: "96051UCSRPobUpMUs2Mb"},
			"4": {Name: "El Oro", ID: "96051UCSRPobUpMUs3Eo"},
			"5": {Name: "Los Ríos", ID: "96051UCSRPobUpMUs4Lr"},
			"6": {Name: "Otra", ID: "96051UCSRPobUpMUs5Ot"},
		},
		Servicios: Catalog{
			"1": {Name: "Internet Fijo"},
			"2": {Name: "Internet Móvil"},
			"3": {Name: "Telefonía"},
			"4": {Name: "TV Cable"},
			"5": {Name: "Paquete Combo"},
		},
		TiposVenta: Catalog{
			"1": {Name: "Nueva Instalación", ID: "W4E4Zh9gh5D05P2tjRPT"},
			"2": {Name: "Renovación", ID: "W4E4Zh9gh5D05P2tjRP1"},
			"3": {Name: "Upgrade", ID: "W4E4Zh9gh5D05P2tjRP2"},
			"4": {Name: "Adicional", ID: "W4E4Zh9gh5D05P2tjRP3"},
		},
		TiposPago: Catalog{
			"1": {Name: "Ventanilla"},
			"2": {Name: "Débito Automático"},
			"3": {Name: "Transferencia"},
			"4": {Name: "Efectivo"},
		},
	}
}

// LoadCatalogs reads a YAML override file on top of the defaults. Tables
// absent from the file keep their built-in values, so deployments can swap
// a single catalog without restating the rest.
func LoadCatalogs(path string) (Catalogs, error) {
	catalogs := DefaultCatalogs()
	if path == "" {
		return catalogs, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalogs{}, fmt.Errorf("read catalog file: %w", err)
	}

	var override Catalogs
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Catalogs{}, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	if len(override.Provincias) > 0 {
		catalogs.Provincias = override.Provincias
	}
	if len(override.Servicios) > 0 {
		catalogs.Servicios = override.Servicios
	}
	if len(override.TiposVenta) > 0 {
		catalogs.TiposVenta = override.TiposVenta
	}
	if len(override.TiposPago) > 0 {
		catalogs.TiposPago = override.TiposPago
	}

	return catalogs, nil
}
