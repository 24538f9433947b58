package main

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
)

type anthropicCompleter struct {
	client *anthropic.Client
	model  string
}

func newAnthropicCompleter(apiKey, model string) *anthropicCompleter {
	client := anthropic.NewClient(anthropicoption.WithAPIKey(apiKey))
	return &anthropicCompleter{client: &client, model: model}
}

func (c *anthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return content, nil
}

type openaiCompleter struct {
	client *openai.Client
	model  string
}

func newOpenAICompleter(apiKey, model string) *openaiCompleter {
	client := openai.NewClient(openaioption.WithAPIKey(apiKey))
	return &openaiCompleter{client: &client, model: model}
}

func (c *openaiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Message.Content, nil
}
