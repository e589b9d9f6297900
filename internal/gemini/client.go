// Package gemini adapts the Google Gen AI SDK to the chat and image
// operations lifeos needs.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"

	requestTimeout = 60 * time.Second
	imageMIMEType  = "image/jpeg"
)

// ErrCredentialMissing indicates no API key was configured.
var ErrCredentialMissing = errors.New("gemini: API key not configured")

// Options selects models for a Client. Zero values use the defaults.
type Options struct {
	TextModel  string
	ImageModel string
}

// Client creates chat sessions and generates images.
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
}

// NewClient creates a client for the given API key. An empty key returns
// ErrCredentialMissing without touching the network.
func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrCredentialMissing
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	c := &Client{genai: gc, textModel: opts.TextModel, imageModel: opts.ImageModel}
	if c.textModel == "" {
		c.textModel = DefaultTextModel
	}
	if c.imageModel == "" {
		c.imageModel = DefaultImageModel
	}
	return c, nil
}

// TextModel returns the model used for chat sessions.
func (c *Client) TextModel() string { return c.textModel }

// CreateSession opens a chat session with the given system instruction and
// sampling temperature.
func (c *Client) CreateSession(ctx context.Context, systemInstruction string, temperature float32) (Session, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if systemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	chat, err := c.genai.Chats.Create(ctx, c.textModel, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating chat: %w", err)
	}
	return &chatSession{chat: chat}, nil
}

// GenerateImage renders one square JPEG for the prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.genai.Models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: imageMIMEType,
	})
	if err != nil {
		return Image{}, fmt.Errorf("gemini: generating image: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return Image{MIMEType: imageMIMEType}, nil
	}
	gen := resp.GeneratedImages[0]
	if gen == nil || gen.Image == nil {
		return Image{MIMEType: imageMIMEType}, nil
	}
	mime := gen.Image.MIMEType
	if mime == "" {
		mime = imageMIMEType
	}
	return Image{Bytes: gen.Image.ImageBytes, MIMEType: mime}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) Send(ctx context.Context, text string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return Reply{}, fmt.Errorf("gemini: sending message: %w", err)
	}
	return Reply{Text: responseText(resp)}, nil
}

// responseText concatenates the first candidate's text parts, skipping
// thought summaries.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
