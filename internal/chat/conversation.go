package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"
)

// GreetingID is the ID of the seeded opening message.
const GreetingID = "init-1"

// ErrMessageNotFound is returned by ToggleSaved for an unknown ID.
var ErrMessageNotFound = errors.New("chat: message not found")

// Exchange is what one submission appended to the log. User is zero for
// regenerations; both are zero when the submission was skipped.
type Exchange struct {
	User   model.Message
	Reply  model.Message
	Result Result
}

// Skipped reports whether nothing was sent.
func (e Exchange) Skipped() bool {
	return e.Result.Kind == KindSkipped
}

// Conversation is the message log for one mode. Submissions are serialized
// so messages land in submission order.
type Conversation struct {
	mode model.Mode
	mgr  *Manager
	st   *store.Store
	now  func() time.Time

	slot chan struct{}
}

// NewConversation opens the log for mode, seeding the greeting when empty.
func NewConversation(st *store.Store, mgr *Manager, mode model.Mode) (*Conversation, error) {
	c := &Conversation{
		mode: mode,
		mgr:  mgr,
		st:   st,
		now:  time.Now,
		slot: make(chan struct{}, 1),
	}

	n, err := st.MessageCount(mode)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	if n == 0 {
		greeting := model.Message{
			ID:        GreetingID,
			Mode:      mode,
			Sender:    model.SenderAI,
			Text:      content.Greeting(mode),
			Timestamp: c.now(),
		}
		if err := st.InsertMessage(greeting); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Mode returns the conversation's mode.
func (c *Conversation) Mode() model.Mode { return c.mode }

// Submit records text as a USER message, sends it and records the AI reply.
// Blank text is a no-op.
func (c *Conversation) Submit(ctx context.Context, text string) (Exchange, error) {
	if err := c.acquire(ctx); err != nil {
		return Exchange{}, err
	}
	defer c.release()

	if strings.TrimSpace(text) == "" {
		return Exchange{Result: Result{Kind: KindSkipped}}, nil
	}

	user, err := c.newMessage(model.SenderUser, text)
	if err != nil {
		return Exchange{}, err
	}
	if err := c.st.InsertMessage(user); err != nil {
		return Exchange{}, err
	}

	res := c.mgr.Send(ctx, text, c.mode)
	reply, err := c.newMessage(model.SenderAI, res.Text)
	if err != nil {
		return Exchange{}, err
	}
	if err := c.st.InsertMessage(reply); err != nil {
		return Exchange{}, err
	}
	return Exchange{User: user, Reply: reply, Result: res}, nil
}

// Regenerate re-sends the most recent USER text and appends the new reply.
// It is a no-op when the log has no USER message.
func (c *Conversation) Regenerate(ctx context.Context) (Exchange, error) {
	if err := c.acquire(ctx); err != nil {
		return Exchange{}, err
	}
	defer c.release()

	last, err := c.st.LastUserMessage(c.mode)
	if errors.Is(err, store.ErrNotFound) {
		return Exchange{Result: Result{Kind: KindSkipped}}, nil
	}
	if err != nil {
		return Exchange{}, err
	}

	res := c.mgr.Send(ctx, last.Text, c.mode)
	reply, err := c.newMessage(model.SenderAI, res.Text)
	if err != nil {
		return Exchange{}, err
	}
	if err := c.st.InsertMessage(reply); err != nil {
		return Exchange{}, err
	}
	return Exchange{Reply: reply, Result: res}, nil
}

// ToggleSaved flips the bookmark on a message.
func (c *Conversation) ToggleSaved(id string) (model.Message, error) {
	m, err := c.st.ToggleMessageSaved(c.mode, id)
	if errors.Is(err, store.ErrNotFound) {
		return m, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	return m, err
}

// Messages returns the full log in order.
func (c *Conversation) Messages() ([]model.Message, error) {
	return c.st.ListMessages(c.mode, false)
}

// Saved returns bookmarked messages in order.
func (c *Conversation) Saved() ([]model.Message, error) {
	return c.st.ListMessages(c.mode, true)
}

func (c *Conversation) acquire(ctx context.Context) error {
	select {
	case c.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Conversation) release() {
	<-c.slot
}

func (c *Conversation) newMessage(sender model.Sender, text string) (model.Message, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Message{}, fmt.Errorf("generating message id: %w", err)
	}
	return model.Message{
		ID:        id.String(),
		Mode:      c.mode,
		Sender:    sender,
		Text:      text,
		Timestamp: c.now(),
	}, nil
}
