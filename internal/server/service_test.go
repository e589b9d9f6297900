package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"
)

type echoFactory struct{ creates int }

func (f *echoFactory) CreateSession(context.Context, string, float32) (gemini.Session, error) {
	f.creates++
	return echoSession{}, nil
}

type echoSession struct{}

func (echoSession) Send(_ context.Context, text string) (gemini.Reply, error) {
	return gemini.Reply{Text: "echo: " + text}, nil
}

func newTestService(t *testing.T, factory chat.SessionFactory) *Service {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	mgr := chat.NewManager(factory)
	convs := make(map[model.Mode]*chat.Conversation)
	for _, mode := range []model.Mode{model.ModeGeneral, model.ModeBusiness} {
		c, err := chat.NewConversation(st, mgr, mode)
		require.NoError(t, err)
		convs[mode] = c
	}
	habits, err := habit.New(st)
	require.NoError(t, err)

	return New(Config{EventsBuffer: 50}, Deps{
		Manager:       mgr,
		Conversations: convs,
		Habits:        habits,
		Studio:        design.NewStudio(nil, mgr),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp APIResponse
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestHealthz(t *testing.T) {
	h := newTestService(t, nil).Handler()
	w, _ := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
}

func TestPlan(t *testing.T) {
	h := newTestService(t, nil).Handler()

	w, resp := do(t, h, http.MethodPost, "/v1/plan", `{"target":35000000,"saved":"5000000","months":12}`)
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "2500000", data["monthly_contribution"])
	assert.Equal(t, false, resp.Meta["goal_met"])

	w, resp = do(t, h, http.MethodPost, "/v1/plan", `{"target":100,"saved":0,"months":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "invalid input")

	w, _ = do(t, h, http.MethodPost, "/v1/plan", `{"target":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHabitsAPI(t *testing.T) {
	h := newTestService(t, nil).Handler()

	w, resp := do(t, h, http.MethodGet, "/v1/habits", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 5)

	w, resp = do(t, h, http.MethodPost, "/v1/habits", `{"name":"Sedekah Subuh","category":"ibadah"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := resp.Data.(map[string]any)
	assert.Equal(t, true, created["custom"])

	w, _ = do(t, h, http.MethodPost, "/v1/habits", `{"name":"Lari","category":"sport"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, h, http.MethodPost, "/v1/habits/2/toggle", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data.(map[string]any)["completed"])

	w, resp = do(t, h, http.MethodGet, "/v1/habits/progress", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(50), resp.Data.(map[string]any)["percent"])

	w, _ = do(t, h, http.MethodPost, "/v1/habits/missing/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/v1/habits/"+created["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestChatAPI(t *testing.T) {
	f := &echoFactory{}
	svc := newTestService(t, f)
	h := svc.Handler()

	w, resp := do(t, h, http.MethodGet, "/v1/chat/business/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Meta["count"])

	w, resp = do(t, h, http.MethodPost, "/v1/chat/business/messages", `{"text":"Strategi funneling"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	msgs := resp.Data.([]any)
	require.Len(t, msgs, 2)
	reply := msgs[1].(map[string]any)
	assert.Equal(t, "echo: "+chat.BusinessTag+"Strategi funneling", reply["text"])
	assert.Equal(t, "ok", resp.Meta["kind"])

	w, resp = do(t, h, http.MethodPost, "/v1/chat/business/regenerate", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, resp.Data, 1)

	w, resp = do(t, h, http.MethodPost, "/v1/chat/business/messages/"+reply["id"].(string)+"/save", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data.(map[string]any)["saved"])

	w, resp = do(t, h, http.MethodGet, "/v1/chat/business/saved", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, _ = do(t, h, http.MethodPost, "/v1/chat/business/messages", `{"text":"   "}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodPost, "/v1/chat/business/messages", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodGet, "/v1/chat/sales/messages", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, h, http.MethodPost, "/v1/chat/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	do(t, h, http.MethodPost, "/v1/chat/general/messages", `{"text":"lagi"}`)
	assert.Equal(t, 2, f.creates)

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	assert.NotEmpty(t, svc.events)
}

func TestChatAPI_Offline(t *testing.T) {
	h := newTestService(t, nil).Handler()

	w, resp := do(t, h, http.MethodPost, "/v1/chat/general/messages", `{"text":"Assalamualaikum"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	msgs := resp.Data.([]any)
	assert.Equal(t, chat.OfflineNotice, msgs[1].(map[string]any)["text"])
	assert.Equal(t, "offline", resp.Meta["kind"])
}

func TestDesignAPI(t *testing.T) {
	h := newTestService(t, &echoFactory{}).Handler()

	w, _ := do(t, h, http.MethodPost, "/v1/design/image", `{"style":"Watercolor","prompt":"masjid"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = do(t, h, http.MethodPost, "/v1/design/image", `{"style":"Cyberpunk","prompt":"masjid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := do(t, h, http.MethodPost, "/v1/design/video", `{"idea":"pagi di Madinah"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Data.(map[string]any)["prompt"], "Topik video: pagi di Madinah")
}

func TestContentToday(t *testing.T) {
	h := newTestService(t, nil).Handler()

	w, resp := do(t, h, http.MethodGet, "/v1/content/today", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.NotEmpty(t, data["doa"])
	assert.NotEmpty(t, data["quote"])
}

func TestResetHabitsJob(t *testing.T) {
	svc := newTestService(t, nil)
	svc.resetHabits()

	p, err := svc.deps.Habits.Progress()
	require.NoError(t, err)
	assert.Equal(t, 0, p.Completed)
	assert.False(t, svc.snapshotStatus().LastHabitReset.IsZero())
}

func TestRun_BadCron(t *testing.T) {
	svc := newTestService(t, nil)
	svc.cfg.HabitResetCron = "not a schedule"
	svc.cfg.Addr = "127.0.0.1:0"

	err := svc.Run(context.Background())
	assert.Error(t, err)
}

func TestChatSocket(t *testing.T) {
	ts := httptest.NewServer(newTestService(t, &echoFactory{}).Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/chat/general/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.NoError(t, conn.WriteJSON(ClientFrame{Text: "hai"}))
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var user, reply ServerFrame
	require.NoError(t, conn.ReadJSON(&user))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, model.SenderUser, user.Message.Sender)
	assert.Equal(t, "echo: hai", reply.Message.Text)

	require.NoError(t, conn.WriteJSON(ClientFrame{Regenerate: true}))
	var again ServerFrame
	require.NoError(t, conn.ReadJSON(&again))
	assert.Equal(t, model.SenderAI, again.Message.Sender)
	assert.Equal(t, "echo: hai", again.Message.Text)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, Deps{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}
