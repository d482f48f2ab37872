// Package genai binds the opaque generative-service boundary to the
// OpenAI API. Callers hand it a prompt and a destination struct; it
// returns structured output or an error. No retries are attempted and
// no content is interpreted here.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel/trace"
)

const defaultGenerateTimeout = 120 * time.Second

type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
	tracer  trace.Tracer
}

// NewClient builds a client for the generative service. A zero timeout
// falls back to the default bound; timeouts surface as plain errors and
// are classified upstream.
func NewClient(apiKey, model string, timeout time.Duration, tracer trace.Tracer) *Client {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &Client{
		api:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		tracer:  tracer,
	}
}

// GenerateJSON issues exactly one chat completion in JSON mode and
// unmarshals the reply into out. name labels the span and log lines.
func (c *Client) GenerateJSON(ctx context.Context, name, prompt string, out any) error {
	ctx, span := c.tracer.Start(ctx, "genai.generate."+name)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return fmt.Errorf("generate %s: %w", name, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("generate %s: empty completion", name)
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		log.Printf("generate %s returned non-conformant JSON: %v", name, err)
		return fmt.Errorf("generate %s: decode output: %w", name, err)
	}
	return nil
}

// SynthesizePCM converts a script to raw PCM samples (mono, 24 kHz,
// 16-bit little-endian) via the speech endpoint.
func (c *Client) SynthesizePCM(ctx context.Context, script string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "genai.synthesize-speech")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		Input:          script,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: read audio: %w", err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("synthesize speech: no media returned")
	}
	return pcm, nil
}
