package discord

import (
	"context"
	"errors"
	"fmt"

	"untis-notifier/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Notifier posts one message per reconciliation cycle to a Discord webhook.
type Notifier struct {
	cfg    Config
	logger *zap.Logger
}

// NewNotifier creates a webhook notifier.
func NewNotifier(cfg Config, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{cfg: cfg, logger: logger}
}

// Notify implements reconcile.Notifier.
func (n *Notifier) Notify(ctx context.Context, kind reconcile.Kind, changes []reconcile.Change) error {
	if len(changes) == 0 {
		return nil
	}
	if n.cfg.WebhookURL == "" {
		n.logger.Warn("Discord webhook not configured, dropping notification",
			zap.String("kind", string(kind)),
			zap.Int("changes", len(changes)))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content := Format(kind, changes, n.cfg.UserID)
	n.logger.Debug("Sending Discord notification",
		zap.String("kind", string(kind)),
		zap.Int("length", len([]rune(content))))

	agent := fiber.Post(n.cfg.WebhookURL)
	agent.Timeout(n.cfg.Timeout())
	agent.JSON(fiber.Map{"content": content})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("failed to send webhook: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d: %s", code, string(body))
	}

	n.logger.Info("Discord notification sent", zap.String("kind", string(kind)), zap.Int("changes", len(changes)))
	return nil
}
