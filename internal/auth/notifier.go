package auth

import (
	"context"
	"log/slog"
	"strings"

	"opshub/pkg/logger"
)

// ResetNotifier delivers a password reset token to its owner out of band.
type ResetNotifier interface {
	Send(ctx context.Context, email, token string) error
}

// LogNotifier writes the reset link to the application log. It is the
// delivery channel when no broker is configured.
type LogNotifier struct {
	baseURL string
	log     *logger.Logger
}

func NewLogNotifier(baseURL string, log *logger.Logger) *LogNotifier {
	return &LogNotifier{baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (n *LogNotifier) Send(ctx context.Context, email, token string) error {
	n.log.InfoContext(ctx, "Password reset link",
		slog.String("email", email),
		slog.String("link", ResetLink(n.baseURL, token)),
	)
	return nil
}

// ResetLink builds the front-end URL a user follows to choose a new password.
func ResetLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/" + token
}
