package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/planner"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("style", func(fl validator.FieldLevel) bool {
		return design.ValidStyle(fl.Field().String())
	})
	return v
}

type planRequest struct {
	Target decimal.Decimal `json:"target"`
	Saved  decimal.Decimal `json:"saved"`
	Months int             `json:"months" validate:"lte=600"`
}

type messageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type habitRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Category string `json:"category" validate:"required,oneof=ibadah health mindset work"`
}

type imageRequest struct {
	Style  string `json:"style" validate:"omitempty,style"`
	Prompt string `json:"prompt" validate:"required,max=1000"`
}

type videoRequest struct {
	Idea string `json:"idea" validate:"required,max=1000"`
}

// bind decodes the JSON body into req and validates it.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := validate.Struct(req); err != nil {
		failErr(c, err)
		return false
	}
	return true
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok\n")
	})

	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)

	v1.POST("/plan", s.handlePlan)

	v1.POST("/chat/reset", s.handleChatReset)
	conv := v1.Group("/chat/:mode", s.conversation)
	conv.GET("/messages", s.handleListMessages)
	conv.POST("/messages", s.handleSubmit)
	conv.POST("/regenerate", s.handleRegenerate)
	conv.POST("/messages/:id/save", s.handleToggleSaved)
	conv.GET("/saved", s.handleListSaved)
	conv.GET("/ws", s.handleChatSocket)

	v1.GET("/habits", s.handleListHabits)
	v1.POST("/habits", s.handleAddHabit)
	v1.GET("/habits/progress", s.handleHabitProgress)
	v1.POST("/habits/:id/toggle", s.handleToggleHabit)
	v1.DELETE("/habits/:id", s.handleDeleteHabit)

	v1.POST("/design/image", s.handleDesignImage)
	v1.POST("/design/video", s.handleDesignVideo)

	v1.GET("/content/today", s.handleToday)
	v1.GET("/content/business-prompts", func(c *gin.Context) {
		ok(c, http.StatusOK, content.BusinessPrompts, nil)
	})

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Get().Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Service) handleStatus(c *gin.Context) {
	ok(c, http.StatusOK, s.snapshotStatus(), nil)
}

func (s *Service) handleEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	ok(c, http.StatusOK, events, map[string]any{"count": len(events)})
}

func (s *Service) handleStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(c, Event{Type: "status", Timestamp: time.Now(), Data: s.snapshotStatus()})
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev := <-ch:
			writeSSE(c, ev)
			c.Writer.Flush()
		}
	}
}

func writeSSE(c *gin.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(c.Writer, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(c.Writer, "data: %s\n\n", data)
}

func (s *Service) handlePlan(c *gin.Context) {
	var req planRequest
	if !bind(c, &req) {
		return
	}
	p, err := planner.Plan(req.Target, req.Saved, req.Months)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p, map[string]any{
		"goal_met": p.GoalMet(),
		"progress": p.Progress(),
	})
}

// conversation resolves :mode and stores the matching conversation.
func (s *Service) conversation(c *gin.Context) {
	mode := model.Mode(c.Param("mode"))
	conv, found := s.deps.Conversations[mode]
	if !mode.Valid() || !found {
		fail(c, http.StatusNotFound, fmt.Sprintf("unknown chat mode %q", c.Param("mode")))
		return
	}
	c.Set("conversation", conv)
	c.Next()
}

func conversationFrom(c *gin.Context) *chat.Conversation {
	return c.MustGet("conversation").(*chat.Conversation)
}

func (s *Service) handleListMessages(c *gin.Context) {
	msgs, err := conversationFrom(c).Messages()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, msgs, map[string]any{"count": len(msgs)})
}

func (s *Service) handleListSaved(c *gin.Context) {
	msgs, err := conversationFrom(c).Saved()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, msgs, map[string]any{"count": len(msgs)})
}

func (s *Service) handleSubmit(c *gin.Context) {
	var req messageRequest
	if !bind(c, &req) {
		return
	}
	ex, err := conversationFrom(c).Submit(c.Request.Context(), req.Text)
	if err != nil {
		failErr(c, err)
		return
	}
	s.respondExchange(c, ex)
}

func (s *Service) handleRegenerate(c *gin.Context) {
	ex, err := conversationFrom(c).Regenerate(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	s.respondExchange(c, ex)
}

func (s *Service) respondExchange(c *gin.Context, ex chat.Exchange) {
	meta := map[string]any{"kind": ex.Result.Kind}
	if ex.Skipped() {
		ok(c, http.StatusOK, nil, meta)
		return
	}

	var appended []model.Message
	if ex.User.ID != "" {
		appended = append(appended, ex.User)
	}
	appended = append(appended, ex.Reply)
	for _, m := range appended {
		s.publish(EventMessage, m)
	}
	ok(c, http.StatusCreated, appended, meta)
}

func (s *Service) handleToggleSaved(c *gin.Context) {
	m, err := conversationFrom(c).ToggleSaved(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m, nil)
}

func (s *Service) handleChatReset(c *gin.Context) {
	s.deps.Manager.Reset()
	s.publish(EventChatReset, nil)
	ok(c, http.StatusOK, gin.H{"reset": true}, nil)
}

func (s *Service) handleListHabits(c *gin.Context) {
	habits, err := s.deps.Habits.List()
	if err != nil {
		failErr(c, err)
		return
	}
	p, err := s.deps.Habits.Progress()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, habits, map[string]any{"progress": p})
}

func (s *Service) handleAddHabit(c *gin.Context) {
	var req habitRequest
	if !bind(c, &req) {
		return
	}
	h, err := s.deps.Habits.Add(req.Name, model.Category(req.Category))
	if err != nil {
		failErr(c, err)
		return
	}
	s.publish(EventHabit, h)
	ok(c, http.StatusCreated, h, nil)
}

func (s *Service) handleHabitProgress(c *gin.Context) {
	p, err := s.deps.Habits.Progress()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p, nil)
}

func (s *Service) handleToggleHabit(c *gin.Context) {
	h, err := s.deps.Habits.Toggle(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	s.publish(EventHabit, h)
	ok(c, http.StatusOK, h, nil)
}

func (s *Service) handleDeleteHabit(c *gin.Context) {
	if err := s.deps.Habits.Delete(c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) handleDesignImage(c *gin.Context) {
	var req imageRequest
	if !bind(c, &req) {
		return
	}
	img, err := s.deps.Studio.Image(c.Request.Context(), req.Style, req.Prompt)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"data_uri": img.DataURI(), "mime_type": img.MIMEType}, nil)
}

func (s *Service) handleDesignVideo(c *gin.Context) {
	var req videoRequest
	if !bind(c, &req) {
		return
	}
	prompt, err := s.deps.Studio.VideoPrompt(c.Request.Context(), req.Idea)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"prompt": prompt}, nil)
}

func (s *Service) handleToday(c *gin.Context) {
	ok(c, http.StatusOK, content.ForDay(time.Now()), nil)
}
