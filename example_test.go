package kompis_test

import (
	"context"
	"fmt"
	"log"

	"github.com/kompisbot/kompis"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
)

// printMessenger writes outbound messages to stdout instead of a chat
// platform.
type printMessenger struct{ nextID int }

func (m *printMessenger) Send(_ context.Context, p *domain.Payload) (domain.SentMessage, error) {
	fmt.Println(p.Text)
	m.nextID++
	return domain.SentMessage{MessageID: m.nextID, Text: p.Text}, nil
}

func (m *printMessenger) Edit(context.Context, *domain.Payload) error { return nil }

// ExampleNew builds a bot with only the built-in nodes and lets topic
// prediction answer the first message. Conversation files would layer a
// menu and topic flows on top of this.
func ExampleNew() {
	bot, err := kompis.New(&printMessenger{},
		kompis.WithInitialNode(dialog.PredictNodeID),
	)
	if err != nil {
		log.Fatal(err)
	}

	err = bot.Advance(context.Background(), domain.Message{
		Kind:      domain.KindMessage,
		ChatID:    "example",
		FirstName: "Amina",
		Text:      "I want to start SFI",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Output: Amina, you want to talk about: swedish
}
