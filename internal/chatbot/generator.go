package chatbot

import "context"

// Turn is one previous message replayed to the model.
type Turn struct {
	Role    string
	Content string
}

// Generator produces the assistant reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, system string, history []Turn, message string) (string, error)
}

const FallbackReply = "Sorry, our assistant is unavailable right now. " +
	"Please call the salon or leave a message through the contact form and we will get back to you."
