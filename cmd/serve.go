package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeResetCron    string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP/WebSocket API with the daily habit reset",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running server's /v1/status",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeResetCron, "reset-cron", "", "Cron spec for the daily habit reset (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return appCfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	resetCron := appCfg.Server.HabitResetCron
	if flagServeResetCron != "" {
		resetCron = flagServeResetCron
	}

	gin.SetMode(gin.ReleaseMode)
	svc := server.New(server.Config{
		Addr:           serveAddr(),
		HabitResetCron: resetCron,
		EventsBuffer:   flagServeEventsBuffer,
	}, server.Deps{
		Manager:       rt.manager,
		Conversations: rt.conversations,
		Habits:        rt.habits,
		Studio:        rt.studio,
	})

	fmt.Printf("  lifeos listening on http://%s\n", serveAddr())
	if rt.manager.Available() {
		fmt.Println("  AI: online")
	} else {
		fmt.Println("  AI: offline (set GEMINI_API_KEY)")
	}
	if resetCron != "" {
		fmt.Printf("  Habit reset: %s\n", resetCron)
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var body struct {
		Data server.Status `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}
	st := body.Data

	lastReset := "pending"
	if !st.LastHabitReset.IsZero() {
		lastReset = st.LastHabitReset.Local().Format(time.RFC3339)
	}
	fmt.Print(cli.RenderKV([][2]string{
		{"Uptime", cli.FormatDuration(st.UptimeSec)},
		{"AI available", fmt.Sprintf("%v", st.AIAvailable)},
		{"Habit reset", st.HabitResetCron},
		{"Last habit reset", lastReset},
		{"Events", fmt.Sprintf("%d", st.EventCount)},
		{"Subscribers", fmt.Sprintf("%d", st.SubscriberCount)},
	}))
	return nil
}
