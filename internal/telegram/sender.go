// Package telegram delivers finished drafts to the destination channel
// through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/vkgram/vkgram/internal/compose"
	"github.com/vkgram/vkgram/internal/config"
)

// Sender delivers drafts to a single chat using MarkdownV2.
type Sender struct {
	bot    *bot.Bot
	logger *slog.Logger
	chatID string
	quiet  bool
}

// NewSender creates a Sender from the Telegram section of the application
// configuration.
func NewSender(cfg config.TelegramConfig, logger *slog.Logger, opts ...bot.Option) (*Sender, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Sender{
		bot:    b,
		logger: logger.With("component", "telegram_sender"),
		chatID: cfg.ChatID,
		quiet:  cfg.DisableNotification,
	}, nil
}

// Send dispatches one draft with the API call matching its kind.
func (s *Sender) Send(ctx context.Context, draft compose.Draft) error {
	switch draft.Kind {
	case compose.KindMedia:
		return s.sendMediaGroup(ctx, draft.Media)
	default:
		return s.sendText(ctx, draft.Body)
	}
}

func (s *Sender) sendText(ctx context.Context, body string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:              s.chatID,
		Text:                body,
		ParseMode:           models.ParseModeMarkdown,
		DisableNotification: s.quiet,
	})
	if err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	return nil
}

// sendMediaGroup sends photos as one grouped message. The caption is
// normalized and escaped here, right before transmission; only the first
// item ever carries one.
func (s *Sender) sendMediaGroup(ctx context.Context, items []compose.MediaItem) error {
	media := make([]models.InputMedia, 0, len(items))
	for _, item := range items {
		photo := &models.InputMediaPhoto{Media: item.URL}
		if item.Caption != "" {
			photo.Caption = compose.EscapeMarkdown(compose.NormalizeLinks(item.Caption))
			photo.ParseMode = models.ParseModeMarkdown
		}
		media = append(media, photo)
	}

	_, err := s.bot.SendMediaGroup(ctx, &bot.SendMediaGroupParams{
		ChatID:              s.chatID,
		Media:               media,
		DisableNotification: s.quiet,
	})
	if err != nil {
		return fmt.Errorf("sendMediaGroup: %w", err)
	}
	return nil
}
