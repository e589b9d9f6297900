// Package server provides the long-running lifeos HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	HabitResetCron string
	EventsBuffer   int
}

// Deps are the domain services the API exposes.
type Deps struct {
	Manager       *chat.Manager
	Conversations map[model.Mode]*chat.Conversation
	Habits        *habit.Tracker
	Studio        *design.Studio
}

// Event is emitted whenever server-side state changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// Event types.
const (
	EventMessage     = "message"
	EventHabit       = "habit"
	EventHabitsReset = "habits_reset"
	EventChatReset   = "chat_reset"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	UptimeSec       int64     `json:"uptime_sec"`
	AIAvailable     bool      `json:"ai_available"`
	HabitResetCron  string    `json:"habit_reset_cron,omitempty"`
	LastHabitReset  time.Time `json:"last_habit_reset,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API and the scheduled habit reset.
type Service struct {
	cfg  Config
	deps Deps

	mu             sync.RWMutex
	startedAt      time.Time
	lastHabitReset time.Time
	nextEventID    int64
	events         []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config, deps Deps) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		deps:      deps,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves HTTP and runs scheduled jobs until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sched := cron.New()
	if s.cfg.HabitResetCron != "" {
		if _, err := sched.AddFunc(s.cfg.HabitResetCron, s.resetHabits); err != nil {
			return fmt.Errorf("habit reset schedule %q: %w", s.cfg.HabitResetCron, err)
		}
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Get().Info("server listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// resetHabits is the scheduled start-of-day job.
func (s *Service) resetHabits() {
	n, err := s.deps.Habits.ResetDay()
	if err != nil {
		logger.Get().Error("habit reset failed", zap.Error(err))
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.lastHabitReset = now
	s.mu.Unlock()

	logger.Get().Info("habits reset", zap.Int("cleared", n))
	s.publish(EventHabitsReset, gin.H{"cleared": n})
}

func (s *Service) publish(typ string, data any) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{ID: s.nextEventID, Type: typ, Timestamp: time.Now(), Data: data}
	s.mu.Unlock()
	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		UptimeSec:       int64(time.Since(s.startedAt).Seconds()),
		AIAvailable:     s.deps.Manager.Available(),
		HabitResetCron:  s.cfg.HabitResetCron,
		LastHabitReset:  s.lastHabitReset,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
