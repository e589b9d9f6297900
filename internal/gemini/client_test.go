package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestNewClient_EmptyKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		c, err := NewClient(context.Background(), key, Options{})
		if !errors.Is(err, ErrCredentialMissing) {
			t.Errorf("NewClient(%q) err = %v, want ErrCredentialMissing", key, err)
		}
		if c != nil {
			t.Errorf("NewClient(%q) returned non-nil client", key)
		}
	}
}

func TestNewClient_DefaultModels(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key", Options{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.TextModel() != DefaultTextModel || c.imageModel != DefaultImageModel {
		t.Errorf("models = %s/%s", c.TextModel(), c.imageModel)
	}

	c, err = NewClient(context.Background(), "test-key", Options{TextModel: "gemini-2.5-pro"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.TextModel() != "gemini-2.5-pro" {
		t.Errorf("TextModel = %s, want override", c.TextModel())
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			"joins parts skipping thoughts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "thinking...", Thought: true},
					{Text: "Wa'alaikumsalam, "},
					nil,
					{Text: "apa kabar?"},
				}},
			}}},
			"Wa'alaikumsalam, apa kabar?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.resp); got != tt.want {
				t.Errorf("responseText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImage_DataURI(t *testing.T) {
	img := Image{Bytes: []byte("hi")}
	if got := img.DataURI(); got != "data:image/jpeg;base64,aGk=" {
		t.Errorf("DataURI = %q", got)
	}
	if img.Empty() {
		t.Error("Empty() = true for non-empty image")
	}
	if !(Image{}).Empty() {
		t.Error("Empty() = false for zero image")
	}
}
