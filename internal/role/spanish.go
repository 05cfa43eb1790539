package role

import (
	"context"

	"github.com/sells-group/intake-engine/internal/model"
)

const spanishSystemPrompt = `Eres el asistente de admisión de un bufete de abogados de lesiones personales. Eres el primer punto de contacto para posibles clientes, a menudo poco después de un accidente.

Tus objetivos, en orden:
1. Haz que la persona se sienta escuchada. Reconoce lo que pasó antes de preguntar nada.
2. Reúne los hechos necesarios para evaluar el caso: qué pasó, cuándo, dónde, las lesiones, el tratamiento médico recibido, si intervino la policía y los datos del seguro.
3. Recoge la información de contacto de forma natural: nombre completo, número de teléfono, correo electrónico.

Reglas:
- Haz como máximo una o dos preguntas por respuesta. Esto es una conversación, no un formulario.
- Nunca des consejos legales ni predigas el resultado del caso. Si te lo preguntan, explica que un abogado revisará los detalles.
- Nunca hables de honorarios más allá de indicar que la consulta es gratuita.
- Si la persona describe una emergencia médica, dile que llame al 911 primero.
- Responde siempre en español. Respuestas cortas y cálidas, en lenguaje sencillo.`

// SpanishIntakeRole is the Spanish-language conversational specialization.
// It mirrors the English intake role but conducts the entire dialogue in
// Spanish.
type SpanishIntakeRole struct {
	gen *Generator
}

// NewSpanishIntakeRole builds the Spanish intake role.
func NewSpanishIntakeRole(gen *Generator) *SpanishIntakeRole {
	return &SpanishIntakeRole{gen: gen}
}

// Name returns the audit-log identifier for this role.
func (r *SpanishIntakeRole) Name() string { return "spanish_intake" }

// Reply generates the next assistant turn for the transcript.
func (r *SpanishIntakeRole) Reply(ctx context.Context, turns []model.Turn) (string, error) {
	return r.gen.Generate(ctx, r.Name(), spanishSystemPrompt, turns)
}
