package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Ensure LoggingMessenger implements sanakirja.Messenger.
var _ sanakirja.Messenger = (*LoggingMessenger)(nil)

// LoggingMessenger wraps a Messenger with logging of delivered replies.
type LoggingMessenger struct {
	next   sanakirja.Messenger
	logger *slog.Logger
}

// NewLoggingMessenger creates a new LoggingMessenger.
func NewLoggingMessenger(next sanakirja.Messenger, logger *slog.Logger) *LoggingMessenger {
	return &LoggingMessenger{next: next, logger: logger}
}

// Send delegates to the wrapped messenger and logs the reply size.
func (m *LoggingMessenger) Send(ctx context.Context, reply *sanakirja.Reply) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("send",
			"chat_id", reply.ChatID,
			"chars", len(reply.Text),
			"button_rows", len(reply.Buttons),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Send(ctx, reply)
}

// AnswerCallback delegates to the wrapped messenger.
func (m *LoggingMessenger) AnswerCallback(ctx context.Context, callbackID string) (err error) {
	defer func() {
		if err != nil {
			m.logger.Warn("answer callback", "callback_id", callbackID, "err", err)
		}
	}()
	return m.next.AnswerCallback(ctx, callbackID)
}
