package form

import (
	"fmt"
	"strings"

	"github.com/netventas/visitbot/internal/geo"
	"github.com/netventas/visitbot/internal/model/visit"
)

// assembleRecord maps the collected answers to the persisted document
// shape. The client name is uppercased here, not at intake. Coordinates are
// re-parsed defensively: if the stored text no longer yields an in-range
// pair the record simply ships without a geo point.
func assembleRecord(data map[string]string, vendorID string) visit.Record {
	rec := visit.Record{
		// banco is part of the schema but never collected over chat.
		Banco:            "",
		Barrio:           data[visit.FieldBarrio],
		CatalogoServicio: []string{data[visit.FieldServicio]},
		Cedula:           data[visit.FieldCedula],
		Correo:           data[visit.FieldCorreo],
		Direccion:        data[visit.FieldDireccion],
		Estado:           visit.EstadoDefault,
		IDCliente:        data[visit.FieldCedula],
		NombreCliente:    strings.ToUpper(data[visit.FieldNombre]),
		NumCuenta:        data[visit.FieldNumCuenta],
		Observaciones:    data[visit.FieldObservaciones],
		ProvinciaID:      data[visit.FieldProvinciaID],
		Telefono:         data[visit.FieldTelefono],
		Telefono2:        data[visit.FieldTelefono2],
		TipoPago:         data[visit.FieldTipoPago],
		TipoVentaID:      data[visit.FieldTipoVentaID],
		VendedorID:       vendorID,
	}

	if p, ok := geo.Parse(data[visit.FieldCoordenadas]); ok {
		rec.Coordenadas = &p
	}

	return rec
}

// summaryReply builds the confirmation message with every collected value
// and the generated record id.
func summaryReply(data map[string]string, recordID string) string {
	var b strings.Builder

	b.WriteString("✅ **VISITA DE VENTAS REGISTRADA EXITOSAMENTE**\n\n")
	b.WriteString("📋 **RESUMEN:**\n")

	lines := []struct {
		label string
		field string
	}{
		{"👤 Cliente", visit.FieldNombre},
		{"📄 Cédula", visit.FieldCedula},
		{"📧 Email", visit.FieldCorreo},
		{"📱 Teléfono", visit.FieldTelefono},
		{"📞 Teléfono 2", visit.FieldTelefono2},
		{"🏠 Dirección", visit.FieldDireccion},
		{"🏘️ Barrio", visit.FieldBarrio},
		{"🗺️ Provincia", visit.FieldProvincia},
		{"🌐 Servicio", visit.FieldServicio},
		{"💼 Tipo de Venta", visit.FieldTipoVenta},
		{"💳 Tipo de Pago", visit.FieldTipoPago},
		{"🏦 Cuenta", visit.FieldNumCuenta},
		{"📍 Coordenadas", visit.FieldCoordenadas},
		{"📝 Observaciones", visit.FieldObservaciones},
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "%s: %s\n", line.label, data[line.field])
	}

	fmt.Fprintf(&b, "\n🔗 **ID del Registro:** `%s`\n\n", recordID)
	b.WriteString("¡Gracias por completar el formulario! La visita ha sido registrada correctamente en el sistema.\n\n")
	b.WriteString("Para registrar otra visita, escribe **'nuevo'**")

	return b.String()
}
