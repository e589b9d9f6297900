package gemini

import (
	"context"
	"encoding/base64"
)

// Reply is one model turn. Text is empty when the model produced nothing.
type Reply struct {
	Text string
}

// Session is a stateful multi-turn conversation with the text model.
type Session interface {
	Send(ctx context.Context, text string) (Reply, error)
}

// Image is a generated image payload. Bytes is empty when none was produced.
type Image struct {
	Bytes    []byte
	MIMEType string
}

// Empty reports whether the image has no payload.
func (img Image) Empty() bool {
	return len(img.Bytes) == 0
}

// DataURI renders the image as an inline data URI.
func (img Image) DataURI() string {
	mime := img.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Bytes)
}
