// Package visit holds the domain model for the sales-visit intake form:
// the conversation states, the per-phone session, the option catalogs and
// the persisted record shape.
package visit

import "time"

// State names one stage of the fixed question sequence.
type State string

const (
	StateStart         State = "start"
	StateNombre        State = "waiting_nombre"
	StateCedula        State = "waiting_cedula"
	StateCorreo        State = "waiting_correo"
	StateTelefono      State = "waiting_telefono"
	StateTelefono2     State = "waiting_telefono2"
	StateDireccion     State = "waiting_direccion"
	StateBarrio        State = "waiting_barrio"
	StateProvincia     State = "waiting_provincia"
	StateServicio      State = "waiting_servicio"
	StateTipoVenta     State = "waiting_tipo_venta"
	StateTipoPago      State = "waiting_tipo_pago"
	StateNumCuenta     State = "waiting_num_cuenta"
	StateCoordenadas   State = "waiting_coordenadas"
	StateObservaciones State = "waiting_observaciones"
	StateCompleted     State = "completed"
)

// Chain is the full step order. Transitions only ever move forward one
// position; Start and Completed are the only states reachable from outside.
var Chain = []State{
	StateStart,
	StateNombre,
	StateCedula,
	StateCorreo,
	StateTelefono,
	StateTelefono2,
	StateDireccion,
	StateBarrio,
	StateProvincia,
	StateServicio,
	StateTipoVenta,
	StateTipoPago,
	StateNumCuenta,
	StateCoordenadas,
	StateObservaciones,
	StateCompleted,
}

var nextState = func() map[State]State {
	m := make(map[State]State, len(Chain)-1)
	for i := 0; i < len(Chain)-1; i++ {
		m[Chain[i]] = Chain[i+1]
	}
	return m
}()

// Next returns the state that follows s in the chain.
func (s State) Next() (State, bool) {
	n, ok := nextState[s]
	return n, ok
}

// Data keys for the accumulated answers.
const (
	FieldNombre        = "nombre"
	FieldCedula        = "cedula"
	FieldCorreo        = "correo"
	FieldTelefono      = "telefono"
	FieldTelefono2     = "telefono2"
	FieldDireccion     = "direccion"
	FieldBarrio        = "barrio"
	FieldProvincia     = "provincia"
	FieldProvinciaID   = "provincia_id"
	FieldServicio      = "servicio"
	FieldTipoVenta     = "tipo_venta"
	FieldTipoVentaID   = "tipo_venta_id"
	FieldTipoPago      = "tipo_pago"
	FieldNumCuenta     = "num_cuenta"
	FieldCoordenadas   = "coordenadas"
	FieldObservaciones = "observaciones"
)

// Session captures one phone number's progress through the form.
type Session struct {
	Phone     string            `json:"phone"`
	State     State             `json:"state"`
	Data      map[string]string `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewSession returns a fresh session positioned at the start state.
func NewSession(phone string) *Session {
	now := time.Now().UTC()
	return &Session{
		Phone:     phone,
		State:     StateStart,
		Data:      make(map[string]string, 16),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
