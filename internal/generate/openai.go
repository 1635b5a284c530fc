package generate

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAI is the production Generator on the OpenAI responses API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a Generator for the given API key and model.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{client: &client, model: model}
}

// Generate issues exactly one completion call. Errors are returned raw for
// the caller to log; they never reach the end user.
func (g *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("generate: client is nil")
	}
	if g.model == "" {
		return "", errors.New("generate: model is empty")
	}

	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(600),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}
