package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/kompisbot/kompis"
	"github.com/kompisbot/kompis/internal/presentation/tui"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

// localChatID is the single chat the shell drives.
const localChatID = "local"

// ConsoleMessenger renders payloads to a terminal instead of a chat
// platform. Message IDs are a local counter; edits reprint the message
// with a marker so the lock behavior stays visible during flow
// authoring.
type ConsoleMessenger struct {
	mu     sync.Mutex
	out    io.Writer
	render func(*domain.Payload) (string, error)
	nextID int
}

// NewConsoleMessenger creates a messenger writing to out.
func NewConsoleMessenger(out io.Writer) *ConsoleMessenger {
	return &ConsoleMessenger{
		out:    out,
		render: tui.NewRenderer(),
		nextID: 1,
	}
}

var _ ports.Messenger = (*ConsoleMessenger)(nil)

func (m *ConsoleMessenger) Send(_ context.Context, payload *domain.Payload) (domain.SentMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	text, err := m.render(payload)
	if err != nil {
		text = payload.Text + "\n"
	}
	fmt.Fprint(m.out, text)
	return domain.SentMessage{MessageID: id, Text: payload.Text}, nil
}

func (m *ConsoleMessenger) Edit(_ context.Context, payload *domain.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	text, err := m.render(payload)
	if err != nil {
		text = payload.Text + "\n"
	}
	fmt.Fprintf(m.out, "(message %d updated)\n%s", payload.MessageID, text)
	return nil
}

// RunChat drives a conversation on the terminal: every line of input is
// one inbound message. The loop ends on EOF, an interrupt or /quit.
func RunChat(bot *kompis.Bot, in io.Reader, out io.Writer) error {
	tui.PrintBanner()
	fmt.Fprintln(out, "Type a message to start; /reset starts over, /quit leaves.")
	fmt.Fprintln(out)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	firstName := localFirstName()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		msg := domain.Message{
			Kind:      domain.KindMessage,
			ChatID:    localChatID,
			FirstName: firstName,
			Text:      line,
		}
		if err := bot.Advance(ctx, msg); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	fmt.Fprintln(out, "\nHej då!")
	return scanner.Err()
}

func localFirstName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "friend"
}
