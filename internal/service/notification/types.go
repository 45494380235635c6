package notification

import (
	"context"
	"log/slog"
)

// Message Markdown text, DisablePreview suppresses the link preview card
type Message struct {
	Text           string
	DisablePreview bool
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

type consoleNotifier struct {
}

// NewConsoleNotifier logs messages instead of sending them, used when no chat is configured
func NewConsoleNotifier() Notifier {
	return consoleNotifier{}
}

func (c consoleNotifier) Notify(ctx context.Context, msg Message) error {
	slog.Info("notification", "text", msg.Text)
	return nil
}
