// Package design generates Syar'i images and AI video prompts.
package design

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
)

// SafetyModifier is prepended to every image prompt.
const SafetyModifier = "Faceless, no human faces detailed, modest clothing covering aurat, islamic compliant, aesthetic, high quality, 8k resolution, cinematic lighting. "

// VideoInstruction precedes the topic in a video-prompt request.
const VideoInstruction = "Buatlah prompt video yang sangat detail untuk AI Video Generator (seperti Sora/Veo). Pastikan prompt dalam bahasa Inggris. Scene harus Syar'i, cinematic, tanpa wajah close-up yang menggoda, fokus pada ambiance, nature, atau aktivitas positif."

// Styles are the supported image styles. The first is the default.
var Styles = []string{"Realistic", "Clay 3D", "Watercolor", "Line Art", "Anime Syari"}

var (
	// ErrCredentialMissing means no image generator is configured.
	ErrCredentialMissing = gemini.ErrCredentialMissing
	// ErrNoImage means the generator returned no image payload.
	ErrNoImage = errors.New("design: no image generated")
	// ErrEmptyPrompt is returned for a blank prompt or idea.
	ErrEmptyPrompt = errors.New("design: prompt is empty")
)

// ImageGenerator renders an image for a prompt. *gemini.Client implements it.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (gemini.Image, error)
}

// TextSender sends a chat message and always returns display text.
// *chat.Manager implements it.
type TextSender interface {
	SendMessage(ctx context.Context, rawText string, mode model.Mode) string
}

// Studio bundles the image and video-prompt tools.
type Studio struct {
	images ImageGenerator
	text   TextSender
}

// NewStudio returns a Studio. images may be nil when no credential is set.
func NewStudio(images ImageGenerator, text TextSender) *Studio {
	return &Studio{images: images, text: text}
}

// ImagePrompt builds the final prompt sent to the image model.
func ImagePrompt(style, prompt string) string {
	if strings.TrimSpace(style) == "" {
		style = Styles[0]
	}
	return SafetyModifier + style + " style. " + strings.TrimSpace(prompt)
}

// Image generates one image in the given style.
func (s *Studio) Image(ctx context.Context, style, prompt string) (gemini.Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return gemini.Image{}, ErrEmptyPrompt
	}
	if s.images == nil {
		return gemini.Image{}, ErrCredentialMissing
	}

	img, err := s.images.GenerateImage(ctx, ImagePrompt(style, prompt))
	if err != nil {
		logger.Get().Error("image generation failed", zap.String("style", style), zap.Error(err))
		return gemini.Image{}, fmt.Errorf("design: %w", err)
	}
	if img.Empty() {
		return gemini.Image{}, ErrNoImage
	}
	return img, nil
}

// VideoPrompt asks the chat model to write a detailed video-generator prompt
// for idea. It shares the live chat session.
func (s *Studio) VideoPrompt(ctx context.Context, idea string) (string, error) {
	if strings.TrimSpace(idea) == "" {
		return "", ErrEmptyPrompt
	}
	return s.text.SendMessage(ctx, VideoInstruction+"\n\nTopik video: "+idea, model.ModeGeneral), nil
}

// ValidStyle reports whether style is one of Styles.
func ValidStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}
