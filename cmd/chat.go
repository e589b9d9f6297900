package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var flagChatBusiness bool

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the assistant (one-shot with a message, otherwise interactive)",
	Long: "Chat with the Gemini-backed assistant. With a message argument the reply\n" +
		"is printed and the command exits. Without one, an interactive session starts:\n\n" +
		"  /regen     answer the last question again\n" +
		"  /reset     start a fresh AI session\n" +
		"  /history   list messages with their numbers\n" +
		"  /save N    save or unsave message N\n" +
		"  /saved     list saved messages\n" +
		"  /ideas     business content ideas\n" +
		"  /quit      exit",
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&flagChatBusiness, "business", "b", false, "Business coach mode")
	rootCmd.AddCommand(chatCmd)
}

// chatPrinter renders messages to stdout, AI replies as markdown.
type chatPrinter struct {
	md *glamour.TermRenderer
}

func newChatPrinter() chatPrinter {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(88))
	if err != nil {
		return chatPrinter{}
	}
	return chatPrinter{md: r}
}

func (p chatPrinter) print(n int, m model.Message) {
	label := "Anda"
	if m.Sender == model.SenderAI {
		label = "AI"
	}
	header := fmt.Sprintf("  %s %s", cli.RenderMoney(label), cli.RenderMuted(m.Timestamp.Format("15:04")))
	if n > 0 {
		header = fmt.Sprintf("  %s %s", cli.RenderMuted(fmt.Sprintf("[%d]", n)), strings.TrimSpace(header))
	}
	if m.Saved {
		header += cli.RenderMoney(" ★")
	}
	fmt.Println(header)

	if m.Sender == model.SenderAI && p.md != nil {
		if out, err := p.md.Render(m.Text); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Printf("  %s\n\n", m.Text)
}

func (p chatPrinter) printExchange(ex chat.Exchange) {
	if ex.Skipped() {
		return
	}
	p.print(0, ex.Reply)
	if ex.Result.Kind == chat.KindFailed || ex.Result.Kind == chat.KindOffline {
		fmt.Println(cli.RenderWarning("  (" + string(ex.Result.Kind) + ")"))
	}
}

func chatMode() model.Mode {
	if flagChatBusiness {
		return model.ModeBusiness
	}
	return model.ParseMode(appCfg.General.DefaultMode)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	conv := rt.conversations[chatMode()]
	printer := newChatPrinter()

	if len(args) > 0 {
		ex, err := conv.Submit(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printer.printExchange(ex)
		return nil
	}

	return chatREPL(ctx, rt, conv, printer)
}

func chatREPL(ctx context.Context, rt *runtime, conv *chat.Conversation, printer chatPrinter) error {
	msgs, err := conv.Messages()
	if err != nil {
		return err
	}
	fmt.Println()
	for _, m := range msgs {
		printer.print(0, m)
	}
	if !rt.manager.Available() {
		fmt.Println(cli.RenderWarning("  AI offline: set GEMINI_API_KEY or run `lifeos setup`."))
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print(cli.RenderMoney("› "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			fmt.Println(cli.RenderMuted("  AI sedang mengetik..."))
			ex, err := conv.Submit(ctx, line)
			if err != nil {
				return err
			}
			printer.printExchange(ex)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "/quit", "/exit":
			return nil
		case "/regen":
			ex, err := conv.Regenerate(ctx)
			if err != nil {
				return err
			}
			if ex.Skipped() {
				fmt.Println(cli.RenderMuted("  Belum ada pertanyaan untuk diulang."))
			}
			printer.printExchange(ex)
		case "/reset":
			rt.manager.Reset()
			fmt.Println(cli.RenderMuted("  Sesi AI baru dimulai."))
		case "/history":
			msgs, err := conv.Messages()
			if err != nil {
				return err
			}
			for i, m := range msgs {
				printer.print(i+1, m)
			}
		case "/saved":
			saved, err := conv.Saved()
			if err != nil {
				return err
			}
			if len(saved) == 0 {
				fmt.Println(cli.RenderMuted("  Belum ada pesan tersimpan."))
			}
			for _, m := range saved {
				printer.print(0, m)
			}
		case "/save":
			if err := toggleSavedByNumber(conv, fields); err != nil {
				fmt.Println(cli.RenderWarning("  " + err.Error()))
			}
		case "/ideas":
			for i, idea := range content.BusinessPrompts {
				fmt.Printf("  %d. %s\n", i+1, idea)
			}
		default:
			fmt.Println(cli.RenderWarning("  Unknown command " + fields[0] + " (see `lifeos chat --help`)"))
		}
	}
}

// toggleSavedByNumber handles "/save N", N being the 1-based /history number.
func toggleSavedByNumber(conv *chat.Conversation, fields []string) error {
	if len(fields) != 2 {
		return errors.New("usage: /save N")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return errors.New("usage: /save N")
	}
	msgs, err := conv.Messages()
	if err != nil {
		return err
	}
	if n < 1 || n > len(msgs) {
		return fmt.Errorf("no message %d (have %d)", n, len(msgs))
	}
	m, err := conv.ToggleSaved(msgs[n-1].ID)
	if err != nil {
		return err
	}
	if m.Saved {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  Pesan %d disimpan.", n)))
	} else {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  Pesan %d batal disimpan.", n)))
	}
	return nil
}
