package notify

import (
	"context"
	"log/slog"
)

// Message is everything an email or SMS gateway needs to deliver.
type Message struct {
	Channel string
	To      string
	Subject string
	Body    string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log instead of delivering them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notify")}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.InfoContext(ctx, "outbound message",
		"channel", msg.Channel,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
