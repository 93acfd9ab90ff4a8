package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/faqdesk/backend/internal/model/chat"
	"github.com/zhouzirui/faqdesk/backend/internal/service/widget"
)

const chatHelp = `commands:
  /topics         list topics
  /topic <n|title> select a topic by number or exact title
  /min            minimize or expand the panel
  /close          close the panel
  /quit           leave
anything else is sent as a message`

func newChatCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the panel from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			widgets := widget.NewService(e.catalog, widget.Options{
				ReplyDelay: e.cfg.Widget.ReplyDelay,
				Logger:     &e.log,
			})
			return runChat(cmd.Context(), widgets, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChat hosts one panel on a terminal. Input is read line by line;
// every snapshot is rendered by printing the messages not shown yet.
func runChat(ctx context.Context, widgets *widget.Service, in io.Reader, w io.Writer) error {
	out := &lockedWriter{w: w}

	snap, err := widgets.CreateSession(ctx)
	if err != nil {
		return err
	}
	id := snap.SessionID
	defer widgets.Teardown(context.Background(), id)

	updates, unsubscribe, err := widgets.Subscribe(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n%s\n%s\n", chat.PanelTitle, snap.View.Welcome, chatHelp)

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		shown := 0
		for snap := range updates {
			shown = renderTerminal(out, snap, shown)
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := handleChatLine(ctx, widgets, id, strings.TrimRight(scanner.Text(), "\r"), out)
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		unsubscribe()
		<-printed
		return err
	}

	waitForReplies(ctx, widgets, id)
	unsubscribe()
	<-printed
	return nil
}

// lockedWriter serializes writes from the input loop and the renderer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func handleChatLine(ctx context.Context, widgets *widget.Service, id, line string, out io.Writer) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "/quit":
		return true, nil
	case "/topics":
		for i, title := range widgets.Catalog().Titles() {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, title)
		}
		return false, nil
	case "/topic":
		_, err := widgets.SelectTopic(ctx, id, topicTitle(widgets, strings.TrimSpace(arg)))
		return false, err
	case "/min":
		_, err := widgets.ToggleMinimize(ctx, id)
		return false, err
	case "/close":
		_, err := widgets.Close(ctx, id)
		return true, err
	default:
		_, err := widgets.SubmitFreeText(ctx, id, line)
		return false, err
	}
}

// topicTitle accepts a 1-based topic number as a shortcut for its title.
func topicTitle(widgets *widget.Service, arg string) string {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg
	}
	topics := widgets.Catalog().List()
	if n < 1 || n > len(topics) {
		return arg
	}
	return topics[n-1].Title
}

func renderTerminal(out io.Writer, snap widget.Snapshot, shown int) int {
	v := snap.View
	if v == nil {
		fmt.Fprintln(out, "[closed]")
		return shown
	}
	if v.Minimized {
		fmt.Fprintf(out, "[%s minimized]\n", v.Title)
		return shown
	}

	for _, m := range snap.State.Transcript[shown:] {
		prefix := "you"
		if m.Role == chat.RoleAssistant {
			prefix = "bot"
		}
		fmt.Fprintf(out, "%s> %s\n", prefix, m.Content)
	}
	return len(snap.State.Transcript)
}

func waitForReplies(ctx context.Context, widgets *widget.Service, id string) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for widgets.PendingReplies(id) > 0 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
