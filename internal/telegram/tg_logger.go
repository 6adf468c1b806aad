package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
)

// MessageSender is the part of *bot.Bot the logger needs.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramLogger mirrors purchases and checkout failures into topics of an
// operations chat.
type TelegramLogger struct {
	sender MessageSender
	cfg    *config.Config
}

func NewTelegramLogger(sender MessageSender, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{sender: sender, cfg: cfg}
}

// NewBot creates a bot client used only for sending; it never polls for
// updates.
func NewBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

type LogType string

const (
	LogTypeError    LogType = "error"
	LogTypePurchase LogType = "purchase"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.TelegramSendTimeout)
	defer cancel()

	_, err := l.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            Truncate(message, MaxMessageLen),
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	l.Log(LogTypeError, formatError(err, context, time.Now()))
}

func (l *TelegramLogger) LogPurchase(order *domain.Order, games int) {
	l.Log(LogTypePurchase, formatPurchase(order, games))
}

func formatError(err error, context string, at time.Time) string {
	return fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		EscapeMarkdown(context), stripBackticks(err.Error()), at.Format("2006-01-02 15:04:05"))
}

func formatPurchase(order *domain.Order, games int) string {
	return fmt.Sprintf("🛒 *Purchase*\n\n*User:* `%d`\n*Order:* `%s`\n*Total:* $%s\n*Items:* %d\n*Bundles:* %d\n*Games:* %d",
		order.UserID, order.ID, order.TotalAmount.StringFixed(2), len(order.Items), len(order.Bundles), games)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypePurchase:
		return l.cfg.LogTopicPurchase
	default:
		return 0
	}
}
