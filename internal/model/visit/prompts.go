package visit

// Prompts renders the question and the retry reply for every collecting
// state. Choice menus are generated from the catalogs so a catalog override
// changes the prompt and the accepted codes together.
type Prompts struct {
	questions map[State]string
	retries   map[State]string
}

// NewPrompts builds the prompt set for the given catalogs.
func NewPrompts(catalogs Catalogs) *Prompts {
	questions := map[State]string{
		StateNombre: "📋 **FORMULARIO DE VISITA DE VENTAS**\n\n" +
			"¡Hola! Vamos a registrar una nueva visita de ventas.\n\n" +
			"👤 **Paso 1:** ¿Cuál es el nombre completo del cliente?",
		StateCedula:    "🪪 **Paso 2:** Ingresa el número de cédula del cliente (sin guiones ni espacios):",
		StateCorreo:    "📧 **Paso 3:** ¿Cuál es el correo electrónico del cliente?",
		StateTelefono:  "📱 **Paso 4:** Ingresa el teléfono principal del cliente:",
		StateTelefono2: "📞 **Paso 5:** ¿Tiene un teléfono secundario? (Si no tiene, escribe 'NO'):",
		StateDireccion: "🏠 **Paso 6:** Ingresa la dirección completa del cliente:",
		StateBarrio:    "🏘️ **Paso 7:** ¿En qué barrio/sector se encuentra?",
		StateProvincia: "🗺️ **Paso 8:** Selecciona la provincia:\n\n" +
			catalogs.Provincias.Menu() + "\n\nEscribe el número:",
		StateServicio: "🌐 **Paso 9:** Selecciona el servicio de interés:\n\n" +
			catalogs.Servicios.Menu() + "\n\nEscribe el número:",
		StateTipoVenta: "💼 **Paso 10:** Selecciona el tipo de venta:\n\n" +
			catalogs.TiposVenta.Menu() + "\n\nEscribe el número:",
		StateTipoPago: "💳 **Paso 11:** ¿Cuál es la forma de pago preferida?\n\n" +
			catalogs.TiposPago.Menu() + "\n\nEscribe el número:",
		StateNumCuenta: "🏦 **Paso 12:** Si tiene cuenta bancaria para débito, ingresa el número (si no aplica, escribe 'NO'):",
		StateCoordenadas: "📍 **Paso 13:** Por favor, comparte tu ubicación actual para registrar las coordenadas de la visita.\n\n" +
			"*Si no puedes compartir ubicación, escribe las coordenadas manualmente:*\n\n" +
			"Ejemplo: -2.1234567, -79.9876543",
		StateObservaciones: "📝 **Paso 14 (Final):** Agrega cualquier observación importante sobre la visita:",
	}

	retries := map[State]string{
		StateNombre:    "❌ Por favor, ingresa el nombre completo del cliente (mínimo 5 caracteres):",
		StateCedula:    "❌ Por favor, ingresa una cédula válida:",
		StateCorreo:    "❌ Por favor, ingresa un correo electrónico válido:",
		StateTelefono:  "❌ Por favor, ingresa un número de teléfono válido (ej: 0987654321):",
		StateTelefono2: "❌ Por favor, ingresa un teléfono válido o escribe 'NO':",
		StateDireccion: "❌ Por favor, ingresa una dirección más completa (mínimo 10 caracteres):",
		StateProvincia: "❌ Por favor, selecciona una opción válida (" +
			catalogs.Provincias.RangeLabel() + "):\n\n" + catalogs.Provincias.Menu(),
		StateServicio: "❌ Por favor, selecciona una opción válida (" +
			catalogs.Servicios.RangeLabel() + "):\n\n" + catalogs.Servicios.Menu(),
		StateTipoVenta: "❌ Por favor, selecciona una opción válida (" +
			catalogs.TiposVenta.RangeLabel() + "):\n\n" + catalogs.TiposVenta.Menu(),
		StateTipoPago: "❌ Por favor, selecciona una opción válida (" +
			catalogs.TiposPago.RangeLabel() + "):\n\n" + catalogs.TiposPago.Menu(),
		StateCoordenadas: "❌ No pude leer esas coordenadas. Envía tu ubicación o escribe latitud y longitud, por ejemplo: -2.1234567, -79.9876543",
	}

	return &Prompts{questions: questions, retries: retries}
}

// Question returns the prompt asked when entering state.
func (p *Prompts) Question(state State) string {
	return p.questions[state]
}

// Retry returns the reply for a rejected answer at state. States whose
// validator never rejects have no retry text.
func (p *Prompts) Retry(state State) string {
	return p.retries[state]
}

// Static replies outside the question sequence.
const (
	ReplyRestarting   = "🔄 Iniciando nuevo formulario de visita de ventas...\n\n"
	ReplyCompletedNag = "Para registrar una nueva visita de ventas, escribe **'nuevo'**"
	ReplySaveFailed   = "⚠️ Hubo un error al guardar la información. Por favor, intenta nuevamente escribiendo 'reiniciar'."
	ReplyFallback     = "🤔 No entendí tu mensaje. Escribe 'nuevo' para comenzar un nuevo registro."
)
