package dispatching

import (
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/invopop/jsonschema"
)

// outputFormatFor builds the JSON-schema constraint attached to one-shot
// generation requests, so the backend returns a document the engine can
// decode directly.
func outputFormatFor(operation string) *messages.OutputFormat {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}

	var schema *jsonschema.Schema
	switch operation {
	case OperationSpec:
		schema = reflector.Reflect(&messages.SpecDocument{})
	default:
		schema = reflector.Reflect(&messages.PlanDocument{})
	}

	return &messages.OutputFormat{
		Type:   "json_schema",
		Schema: schema,
	}
}
