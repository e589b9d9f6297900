// Package chat manages the single live Gemini chat session and the
// per-mode conversation logs built on top of it.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
)

// Notices shown in place of a model reply.
const (
	OfflineNotice = "Maaf, sistem sedang offline (API Key tidak ditemukan)."
	EmptyNotice   = "Maaf, saya tidak dapat menghasilkan respon saat ini."
	ApologyNotice = "Mohon maaf, ada kendala koneksi sesaat. Silakan coba lagi ya, InsyaAllah lancar."
)

// BusinessTag prefixes text sent in business mode.
const BusinessTag = "[Context: Business Coach & Content Strategist] "

// Temperature is the sampling temperature for every session.
const Temperature float32 = 0.7

var (
	// ErrCredentialMissing means no session can be created.
	ErrCredentialMissing = gemini.ErrCredentialMissing
	// ErrEmptyResponse means the model answered with no text.
	ErrEmptyResponse = errors.New("chat: empty response")
)

// Kind classifies the outcome of a send.
type Kind string

const (
	KindSkipped Kind = "skipped"
	KindOK      Kind = "ok"
	KindOffline Kind = "offline"
	KindEmpty   Kind = "empty"
	KindFailed  Kind = "failed"
)

// Result is the outcome of Manager.Send. Text is always displayable; Err
// carries the underlying failure when Kind is not KindOK or KindSkipped.
type Result struct {
	Text string
	Kind Kind
	Err  error
}

// SessionFactory opens chat sessions. *gemini.Client implements it.
type SessionFactory interface {
	CreateSession(ctx context.Context, systemInstruction string, temperature float32) (gemini.Session, error)
}

// Manager owns at most one live chat session for the process. The session
// is created on first send and shared by every mode.
type Manager struct {
	factory SessionFactory

	mu      sync.Mutex
	session gemini.Session
}

// NewManager returns a Manager. A nil factory means no credential is
// configured and every send answers with OfflineNotice.
func NewManager(factory SessionFactory) *Manager {
	return &Manager{factory: factory}
}

// Available reports whether sessions can be created at all.
func (m *Manager) Available() bool {
	return m.factory != nil
}

// Send transmits rawText in the given mode.
func (m *Manager) Send(ctx context.Context, rawText string, mode model.Mode) Result {
	if strings.TrimSpace(rawText) == "" {
		return Result{Kind: KindSkipped}
	}

	session, err := m.current(ctx)
	if err != nil {
		logger.Get().Warn("chat session unavailable", zap.String("kind", string(KindOffline)), zap.Error(err))
		return Result{Text: OfflineNotice, Kind: KindOffline, Err: err}
	}

	text := rawText
	if mode == model.ModeBusiness {
		text = BusinessTag + rawText
	}

	reply, err := session.Send(ctx, text)
	if err != nil {
		logger.Get().Error("chat send failed",
			zap.String("kind", string(KindFailed)),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return Result{Text: ApologyNotice, Kind: KindFailed, Err: err}
	}
	if strings.TrimSpace(reply.Text) == "" {
		logger.Get().Warn("chat reply empty", zap.String("kind", string(KindEmpty)), zap.String("mode", string(mode)))
		return Result{Text: EmptyNotice, Kind: KindEmpty, Err: ErrEmptyResponse}
	}
	return Result{Text: reply.Text, Kind: KindOK}
}

// SendMessage is Send reduced to its display text. It never fails.
func (m *Manager) SendMessage(ctx context.Context, rawText string, mode model.Mode) string {
	return m.Send(ctx, rawText, mode).Text
}

// Reset drops the live session; the next send creates a fresh one.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
}

// current returns the live session, creating it if needed.
func (m *Manager) current(ctx context.Context) (gemini.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}
	if m.factory == nil {
		return nil, ErrCredentialMissing
	}
	s, err := m.factory.CreateSession(ctx, content.SystemPrompt, Temperature)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	m.session = s
	return s, nil
}
