// Package identity validates identity documents (INE credentials) through a
// vision oracle. The oracle asserts validity and returns the holder's data;
// this package only enforces the response contract and fails closed on
// anything ambiguous.
package identity

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/valdezlabs/citabot/internal/oracle"
	"github.com/valdezlabs/citabot/pkg/logging"
)

var tracer = otel.Tracer("citabot/identity")

// DefaultHolderName is used when the oracle validates a document but omits
// the holder's name.
const DefaultHolderName = "Cliente"

const validationPrompt = `Analiza esta imagen y determina si es una credencial de elector (INE) de México.

Responde SOLO en formato JSON válido, sin texto adicional:

Si NO es una INE válida:
{ "validate": false }

Si ES una INE válida:
{
  "validate": true,
  "nombre": "NOMBRE COMPLETO",
  "direccion": "DIRECCIÓN",
  "fecha_nacimiento": "DD/MM/AAAA",
  "curp": "CURP"
}`

// Result is the outcome of a document validation attempt.
type Result struct {
	Valid      bool
	HolderName string
}

// Gateway wraps the vision oracle call and parses its structured reply.
type Gateway struct {
	client  oracle.Client
	modelID string
	timeout time.Duration
	logger  *logging.Logger
}

// NewGateway creates a document validation gateway.
func NewGateway(client oracle.Client, modelID string, timeout time.Duration, logger *logging.Logger) *Gateway {
	if client == nil {
		panic("identity: oracle client cannot be nil")
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		client:  client,
		modelID: modelID,
		timeout: timeout,
		logger:  logger.Component("identity"),
	}
}

type validationReply struct {
	Validate bool   `json:"validate"`
	Nombre   string `json:"nombre"`
}

// Validate sends the image to the vision oracle and parses the verdict.
// Oracle failure, timeout, and unparseable replies all return Valid=false:
// identity verification never advances on ambiguous input.
func (g *Gateway) Validate(ctx context.Context, image []byte) Result {
	ctx, span := tracer.Start(ctx, "identity.validate_document")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Complete(ctx, oracle.Request{
		Model:     g.modelID,
		Prompt:    validationPrompt,
		Image:     image,
		MaxTokens: 300,
	})
	if err != nil {
		span.RecordError(err)
		g.logger.Error("document validation oracle call failed", "error", err)
		return Result{Valid: false}
	}

	var reply validationReply
	if err := json.Unmarshal([]byte(oracle.UnwrapPayload(resp.Text)), &reply); err != nil {
		span.RecordError(err)
		g.logger.Error("document validation reply unparseable", "error", err)
		return Result{Valid: false}
	}

	if !reply.Validate {
		return Result{Valid: false}
	}

	name := strings.TrimSpace(reply.Nombre)
	if name == "" {
		name = DefaultHolderName
	}
	return Result{Valid: true, HolderName: name}
}
