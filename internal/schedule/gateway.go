package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/valdezlabs/citabot/internal/locale"
	"github.com/valdezlabs/citabot/internal/oracle"
	"github.com/valdezlabs/citabot/pkg/logging"
)

var tracer = otel.Tracer("citabot/schedule")

const extractionSystemPrompt = "Responde solo en JSON válido, sin texto adicional ni markdown."

// The oracle is the sole source of calendar arithmetic. The prompt anchors it
// to the caller's clock and pins down the interpretation rules, in particular
// that vague times of day ("en la tarde") count as a missing hour.
const extractionPromptTemplate = `Eres un extractor de fechas y horas experto en español.
Fecha y hora actual: %s %s
Día de la semana actual: %s (%s)
Zona horaria: %s

Extrae la fecha y hora del siguiente mensaje: "%s"

REGLAS IMPORTANTES PARA CALCULAR FECHAS:
1. "hoy" = %s
2. "mañana" = %s
3. "pasado mañana" = %s
4. "en X días" o "dentro de X días" = suma exactamente X días a la fecha actual
5. "en X semanas" = suma X*7 días a la fecha actual
6. "el próximo lunes/martes/miércoles/jueves/viernes/sábado/domingo" = siguiente día de la semana
7. "el lunes/martes/etc que viene" = siguiente día de la semana

REGLAS IMPORTANTES PARA HORAS:
- "3 PM" o "3 de la tarde" = 15:00
- "3 AM" o "3 de la mañana" = 03:00
- "7 de la noche" = 19:00
- "10 de la mañana" = 10:00
- "12 del mediodía" o "12 PM" = 12:00
- Si NO menciona una hora ESPECÍFICA (como "3 PM", "15:00", etc.), falta hora
- "en la mañana", "en la tarde", "en la noche" NO son horas específicas

FORMATO DE RESPUESTA (SOLO JSON):
- Si tiene fecha y hora: {"date": "YYYY-MM-DD", "time": "HH:MM", "missing": null}
- Si falta hora: {"date": "YYYY-MM-DD", "time": null, "missing": "hora"}
- Si falta fecha: {"date": null, "time": "HH:MM", "missing": "fecha"}
- Si faltan ambos: {"date": null, "time": null, "missing": "ambos"}
- Si no entiende: {"date": null, "time": null, "missing": "no_entendido"}

Responde SOLO en formato JSON válido, sin texto adicional ni markdown.`

// Gateway wraps the date/time oracle call and enforces its response schema.
type Gateway struct {
	client   oracle.Client
	modelID  string
	timezone string
	timeout  time.Duration
	logger   *logging.Logger
}

// NewGateway creates a schedule extraction gateway.
func NewGateway(client oracle.Client, modelID, timezone string, timeout time.Duration, logger *logging.Logger) *Gateway {
	if client == nil {
		panic("schedule: oracle client cannot be nil")
	}
	if timezone == "" {
		timezone = "America/Mexico_City"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		client:   client,
		modelID:  modelID,
		timezone: timezone,
		timeout:  timeout,
		logger:   logger.Component("schedule"),
	}
}

type extractionReply struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Missing *string `json:"missing"`
}

// Extract asks the oracle to resolve the user's free text against now. Any
// oracle failure, timeout, or off-contract reply yields MissingError.
func (g *Gateway) Extract(ctx context.Context, text string, now time.Time) Extraction {
	ctx, span := tracer.Start(ctx, "schedule.extract")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Complete(ctx, oracle.Request{
		Model:     g.modelID,
		System:    extractionSystemPrompt,
		Prompt:    g.buildPrompt(text, now),
		MaxTokens: 150,
	})
	if err != nil {
		span.RecordError(err)
		g.logger.Error("schedule extraction oracle call failed", "error", err)
		return Extraction{Missing: MissingError}
	}

	var reply extractionReply
	if err := json.Unmarshal([]byte(oracle.UnwrapPayload(resp.Text)), &reply); err != nil {
		span.RecordError(err)
		g.logger.Error("schedule extraction reply unparseable", "error", err, "reply", resp.Text)
		return Extraction{Missing: MissingError}
	}

	ex := Extraction{
		Date: deref(reply.Date),
		Time: deref(reply.Time),
	}
	missing, ok := normalizeMissing(deref(reply.Missing), ex.Date, ex.Time)
	if !ok {
		g.logger.Warn("schedule extraction missing flag off contract", "missing", deref(reply.Missing))
	}
	ex.Missing = missing
	return ex
}

func (g *Gateway) buildPrompt(text string, now time.Time) string {
	currentDate := now.Format(DateLayout)
	currentTime := now.Format(TimeLayout)
	weekdayES := locale.Weekday(now)
	weekdayEN := now.Format("Monday")

	return fmt.Sprintf(extractionPromptTemplate,
		currentDate, currentTime,
		weekdayES, weekdayEN,
		g.timezone,
		text,
		currentDate,
		now.AddDate(0, 0, 1).Format(DateLayout),
		now.AddDate(0, 0, 2).Format(DateLayout),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
