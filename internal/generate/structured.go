package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/theimaginaryfoundation/support-o-bot/internal/fileutils"
	"github.com/theimaginaryfoundation/support-o-bot/internal/prompt"
)

// structuredReply is the strict-schema shape requested from the model in
// structured mode.
type structuredReply struct {
	// Reply is the conversational reply body.
	Reply string `json:"reply"`

	// Stress is the model's stress estimate: low, mid, high, or very high.
	Stress string `json:"stress"`
}

var structuredReplySchema = generateSchema[structuredReply]()

// StructuredOpenAI asks the model for strict JSON instead of sentinel-tagged
// free text, then re-renders the result through the sentinel format so the
// shared parsing path observes identical levels. String parsing of model
// output is fragile; this mode hardens the contract without changing it.
type StructuredOpenAI struct {
	client *openai.Client
	model  string
}

// NewStructuredOpenAI builds a structured-output Generator sharing the plain
// generator's client configuration.
func NewStructuredOpenAI(apiKey, model string) *StructuredOpenAI {
	inner := NewOpenAI(apiKey, model)
	return &StructuredOpenAI{client: inner.client, model: inner.model}
}

func (g *StructuredOpenAI) Generate(ctx context.Context, promptText string) (string, error) {
	if g.client == nil {
		return "", errors.New("generate: client is nil")
	}
	if g.model == "" {
		return "", errors.New("generate: model is empty")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SupportReply",
			Schema:      structuredReplySchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Supportive reply with stress estimate"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(600),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(promptText, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	var out structuredReply
	if err := fileutils.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return "", fmt.Errorf("generate: decode structured reply: %w", err)
	}
	return RenderSentinel(out.Reply, out.Stress), nil
}

// RenderSentinel formats a reply and descriptor in the sentinel wire form the
// parser consumes.
func RenderSentinel(reply, stress string) string {
	return reply + "\n" + prompt.Sentinel + " " + stress
}

// generateSchema reflects T into a strict OpenAI-compatible JSON schema.
func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	schemaObj, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	ensureOpenAICompliance(schemaObj)
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

func ensureOpenAICompliance(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			var requiredFields []string
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureOpenAICompliance(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureOpenAICompliance(items)
	}

	if additionalProps, ok := schema[additionalPropertiesKey].(map[string]interface{}); ok {
		ensureOpenAICompliance(additionalProps)
	}
}
