// Package model defines domain types shared across lifeos packages.
package model

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "USER"
	SenderAI   Sender = "AI"
)

// Mode selects the conversational context for a chat send.
type Mode string

const (
	ModeGeneral  Mode = "general"
	ModeBusiness Mode = "business"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeGeneral || m == ModeBusiness
}

// ParseMode converts a string to a Mode, falling back to ModeGeneral.
func ParseMode(s string) Mode {
	if Mode(s) == ModeBusiness {
		return ModeBusiness
	}
	return ModeGeneral
}

// Message is one entry in a conversation log.
type Message struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Saved     bool      `json:"saved"`
}
