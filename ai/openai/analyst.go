// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/insight/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Analyst implements ai.Analyst using OpenAI-compatible chat APIs.
// The system preamble is fixed at construction and sent with every call.
type Analyst struct {
	client   llms.Model
	preamble string
	logger   *slog.Logger
}

// newAnalyst is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyst(config *ai.Config) (*Analyst, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithBaseURL(config.ChatHost),
		openai.WithModel(config.ChatModel),
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		opts = append(opts, openai.WithToken("none"))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Analyst{
		client:   client,
		preamble: config.Preamble,
		logger:   slog.Default().With("component", "openai-analyst"),
	}, nil
}

// NewAnalyst creates a new analyst using the provided configuration.
//
// Returns ai.Analyst interface to enforce abstraction.
func NewAnalyst(config *ai.Config) (ai.Analyst, error) {
	return newAnalyst(config)
}

// Analyze sends the prompt to the chat model and returns its completion.
func (a *Analyst) Analyze(ctx context.Context, prompt string) (string, error) {
	a.logger.Debug("requesting analysis", "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(a.preamble),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		a.logger.Error("failed to generate analysis", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("chat model returned no choices")
	}

	return response.Choices[0].Content, nil
}
