package visit

import "github.com/netventas/visitbot/internal/geo"

// DatosTecnicos carries the technician sub-document. Intake never fills it;
// the backing system expects the keys present with empty values.
type DatosTecnicos struct {
	Armario      string `json:"armario"`
	Caja         string `json:"caja"`
	Descripcion  string `json:"descripción"`
	Distribuidor string `json:"distribuidor"`
	IMEI1        string `json:"imei1"`
	IMEI2        string `json:"imei2"`
	IMSI         string `json:"imsi"`
}

// EstadoDefault is the status every freshly captured visit starts in.
const EstadoDefault = "verde"

// Record is the persisted sales-visit document. Field names follow the
// sales_visits collection schema, accents included.
type Record struct {
	Banco            string
	Barrio           string
	CatalogoServicio []string
	Cedula           string
	Coordenadas      *geo.Point
	Correo           string
	DatosTecnicos    DatosTecnicos
	Direccion        string
	Estado           string
	IDCliente        string
	NombreCliente    string
	NumCuenta        string
	Observaciones    string
	ProvinciaID      string
	Telefono         string
	Telefono2        string
	TipoPago         string
	TipoVentaID      string
	VendedorID       string
}
