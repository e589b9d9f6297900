package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"
)

// fakeFactory counts session creations and hands out fakeSessions.
type fakeFactory struct {
	mu        sync.Mutex
	creates   int
	createErr error
	sessions  []*fakeSession
	gotSystem string
	gotTemp   float32

	// replies is consumed in order by every session this factory creates.
	replies []fakeReply
}

type fakeReply struct {
	text string
	err  error
}

func (f *fakeFactory) CreateSession(_ context.Context, sys string, temp float32) (gemini.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.gotSystem, f.gotTemp = sys, temp
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := &fakeSession{f: f}
	f.sessions = append(f.sessions, s)
	return s, nil
}

type fakeSession struct {
	f    *fakeFactory
	sent []string
}

func (s *fakeSession) Send(_ context.Context, text string) (gemini.Reply, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.sent = append(s.sent, text)
	if len(s.f.replies) == 0 {
		return gemini.Reply{Text: "echo: " + text}, nil
	}
	r := s.f.replies[0]
	s.f.replies = s.f.replies[1:]
	return gemini.Reply{Text: r.text}, r.err
}

func TestSend_Offline(t *testing.T) {
	m := NewManager(nil)

	res := m.Send(context.Background(), "Assalamualaikum", model.ModeGeneral)
	if res.Text != OfflineNotice || res.Kind != KindOffline {
		t.Fatalf("Send = %+v, want offline notice", res)
	}
	if !errors.Is(res.Err, ErrCredentialMissing) {
		t.Errorf("Err = %v, want ErrCredentialMissing", res.Err)
	}
	if m.Available() {
		t.Error("Available() = true without factory")
	}
}

func TestSend_CreateFailureIsOffline(t *testing.T) {
	f := &fakeFactory{createErr: errors.New("dial tcp: refused")}
	m := NewManager(f)

	if got := m.SendMessage(context.Background(), "hi", model.ModeGeneral); got != OfflineNotice {
		t.Fatalf("SendMessage = %q, want offline notice", got)
	}
	if f.creates != 1 {
		t.Errorf("creates = %d, want 1", f.creates)
	}
}

func TestSend_BlankIsNoop(t *testing.T) {
	f := &fakeFactory{}
	m := NewManager(f)

	for _, in := range []string{"", "   ", "\n\t"} {
		res := m.Send(context.Background(), in, model.ModeGeneral)
		if res.Kind != KindSkipped || res.Text != "" {
			t.Errorf("Send(%q) = %+v, want skipped", in, res)
		}
	}
	if f.creates != 0 {
		t.Errorf("blank sends created %d sessions", f.creates)
	}
}

func TestSend_LazySessionConfig(t *testing.T) {
	f := &fakeFactory{}
	m := NewManager(f)

	if got := m.SendMessage(context.Background(), "hi", model.ModeGeneral); got != "echo: hi" {
		t.Fatalf("SendMessage = %q", got)
	}
	m.SendMessage(context.Background(), "again", model.ModeGeneral)

	if f.creates != 1 {
		t.Errorf("creates = %d, want 1 (session reused)", f.creates)
	}
	if f.gotSystem != content.SystemPrompt || f.gotTemp != Temperature {
		t.Errorf("session created with temp %v and unexpected instruction", f.gotTemp)
	}
}

func TestSend_BusinessTag(t *testing.T) {
	f := &fakeFactory{}
	m := NewManager(f)

	m.Send(context.Background(), "Strategi funneling", model.ModeBusiness)
	m.Send(context.Background(), "Tips umroh", model.ModeGeneral)

	sent := f.sessions[0].sent
	if sent[0] != BusinessTag+"Strategi funneling" {
		t.Errorf("business send = %q", sent[0])
	}
	if sent[1] != "Tips umroh" {
		t.Errorf("general send = %q, want untagged", sent[1])
	}
}

func TestSend_EmptyReply(t *testing.T) {
	f := &fakeFactory{replies: []fakeReply{{text: ""}, {text: "  "}}}
	m := NewManager(f)

	for i := 0; i < 2; i++ {
		res := m.Send(context.Background(), "hi", model.ModeGeneral)
		if res.Text != EmptyNotice || res.Kind != KindEmpty || !errors.Is(res.Err, ErrEmptyResponse) {
			t.Errorf("send %d = %+v, want empty notice", i, res)
		}
	}
}

func TestSend_FailureKeepsSession(t *testing.T) {
	f := &fakeFactory{replies: []fakeReply{
		{err: fmt.Errorf("503 unavailable")},
		{text: "Alhamdulillah"},
	}}
	m := NewManager(f)

	res := m.Send(context.Background(), "hi", model.ModeGeneral)
	if res.Text != ApologyNotice || res.Kind != KindFailed || res.Err == nil {
		t.Fatalf("first send = %+v, want apology", res)
	}
	res = m.Send(context.Background(), "hi", model.ModeGeneral)
	if res.Text != "Alhamdulillah" || res.Kind != KindOK {
		t.Fatalf("second send = %+v", res)
	}
	if f.creates != 1 || len(f.sessions[0].sent) != 2 {
		t.Errorf("creates = %d, sent on first session = %d; want 1, 2", f.creates, len(f.sessions[0].sent))
	}
}

func TestReset_CreatesOneNewSession(t *testing.T) {
	f := &fakeFactory{}
	m := NewManager(f)

	m.Send(context.Background(), "a", model.ModeGeneral)
	m.Reset()
	m.Reset()
	m.Send(context.Background(), "b", model.ModeGeneral)
	m.Send(context.Background(), "c", model.ModeGeneral)

	if f.creates != 2 {
		t.Fatalf("creates = %d, want 2", f.creates)
	}
	if got := f.sessions[1].sent; len(got) != 2 || got[0] != "b" {
		t.Errorf("second session sent %v", got)
	}
}

func newConversation(t *testing.T, m *Manager, mode model.Mode) *Conversation {
	t.Helper()
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	c, err := NewConversation(st, m, mode)
	if err != nil {
		t.Fatalf("NewConversation: %v", err)
	}
	return c
}

func TestConversation_Greeting(t *testing.T) {
	c := newConversation(t, NewManager(nil), model.ModeBusiness)

	msgs, err := c.Messages()
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].ID != GreetingID || msgs[0].Sender != model.SenderAI {
		t.Fatalf("messages = %+v, want seeded greeting", msgs)
	}
	if msgs[0].Text != content.Greeting(model.ModeBusiness) {
		t.Errorf("greeting = %q", msgs[0].Text)
	}
}

func TestConversation_SubmitAndRegenerate(t *testing.T) {
	f := &fakeFactory{replies: []fakeReply{{text: "b"}, {text: "b2"}}}
	c := newConversation(t, NewManager(f), model.ModeGeneral)
	ctx := context.Background()

	ex, err := c.Submit(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if ex.User.Text != "a" || ex.Reply.Text != "b" {
		t.Fatalf("exchange = %+v", ex)
	}

	ex, err = c.Regenerate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ex.User.ID != "" || ex.Reply.Text != "b2" {
		t.Fatalf("regenerate exchange = %+v", ex)
	}

	msgs, _ := c.Messages()
	var got []string
	for _, m := range msgs[1:] {
		got = append(got, string(m.Sender)+":"+m.Text)
	}
	if want := "USER:a AI:b AI:b2"; strings.Join(got, " ") != want {
		t.Errorf("log = %v, want %s", got, want)
	}
	if sent := f.sessions[0].sent; sent[1] != "a" {
		t.Errorf("regenerate re-sent %q, want a", sent[1])
	}
}

func TestConversation_RegenerateWithoutUser(t *testing.T) {
	f := &fakeFactory{}
	c := newConversation(t, NewManager(f), model.ModeGeneral)

	ex, err := c.Regenerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !ex.Skipped() {
		t.Errorf("Regenerate on greeting-only log = %+v, want skipped", ex)
	}
	if f.creates != 0 {
		t.Error("regenerate without user message touched the client")
	}
}

func TestConversation_BlankSubmit(t *testing.T) {
	c := newConversation(t, NewManager(&fakeFactory{}), model.ModeGeneral)

	ex, err := c.Submit(context.Background(), "   ")
	if err != nil || !ex.Skipped() {
		t.Fatalf("Submit(blank) = %+v, %v", ex, err)
	}
	msgs, _ := c.Messages()
	if len(msgs) != 1 {
		t.Errorf("blank submit appended messages: %d", len(msgs))
	}
}

func TestConversation_OfflineStillLogs(t *testing.T) {
	c := newConversation(t, NewManager(nil), model.ModeGeneral)

	ex, err := c.Submit(context.Background(), "Assalamualaikum")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Reply.Text != OfflineNotice || ex.Result.Kind != KindOffline {
		t.Errorf("reply = %+v", ex.Reply)
	}
}

func TestConversation_ToggleSaved(t *testing.T) {
	c := newConversation(t, NewManager(&fakeFactory{}), model.ModeGeneral)
	ex, _ := c.Submit(context.Background(), "hi")

	m, err := c.ToggleSaved(ex.Reply.ID)
	if err != nil || !m.Saved {
		t.Fatalf("ToggleSaved = %+v, %v", m, err)
	}
	saved, _ := c.Saved()
	if len(saved) != 1 || saved[0].ID != ex.Reply.ID {
		t.Errorf("Saved = %+v", saved)
	}
	if m, _ = c.ToggleSaved(ex.Reply.ID); m.Saved {
		t.Error("second toggle did not unsave")
	}
	if _, err := c.ToggleSaved("nope"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("err = %v, want ErrMessageNotFound", err)
	}
}

func TestConversation_ConcurrentSubmitsStayPaired(t *testing.T) {
	c := newConversation(t, NewManager(&fakeFactory{}), model.ModeGeneral)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := c.Submit(context.Background(), fmt.Sprintf("q%d", i)); err != nil {
				t.Errorf("Submit: %v", err)
			}
		}(i)
	}
	wg.Wait()

	msgs, _ := c.Messages()
	msgs = msgs[1:]
	if len(msgs) != 16 {
		t.Fatalf("got %d messages, want 16", len(msgs))
	}
	for i := 0; i < len(msgs); i += 2 {
		if msgs[i].Sender != model.SenderUser || msgs[i+1].Text != "echo: "+msgs[i].Text {
			t.Errorf("pair %d out of order: %q / %q", i/2, msgs[i].Text, msgs[i+1].Text)
		}
	}
}

func TestConversation_CancelledWhileWaiting(t *testing.T) {
	c := newConversation(t, NewManager(&fakeFactory{}), model.ModeGeneral)
	c.slot <- struct{}{}
	defer c.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Submit(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
