package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (s *recordingSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	s.sent = append(s.sent, params)
	return &models.Message{}, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		LogTelegramChatID: -100500,
		LogTopicError:     7,
		LogTopicPurchase:  9,
	}
}

func TestTelegramLogger_LogPurchase(t *testing.T) {
	sender := &recordingSender{}
	l := NewTelegramLogger(sender, testConfig())

	order := &domain.Order{
		ID:          uuid.MustParse("0b7b6f7e-0000-4000-8000-000000000001"),
		UserID:      42,
		TotalAmount: decimal.RequireFromString("40.5"),
		Items:       []domain.OrderItem{{}},
		Bundles:     []domain.OrderBundle{{}},
	}
	l.LogPurchase(order, 3)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, int64(-100500), msg.ChatID)
	assert.Equal(t, 9, msg.MessageThreadID)
	assert.Contains(t, msg.Text, "`42`")
	assert.Contains(t, msg.Text, "0b7b6f7e-0000-4000-8000-000000000001")
	assert.Contains(t, msg.Text, "$40.50")
	assert.Contains(t, msg.Text, "*Games:* 3")
}

func TestTelegramLogger_LogError(t *testing.T) {
	sender := &recordingSender{err: errors.New("telegram is down")}
	l := NewTelegramLogger(sender, testConfig())

	l.LogError(errors.New("pq: `bad` thing"), "checkout user_42")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, 7, sender.sent[0].MessageThreadID)
	assert.Contains(t, sender.sent[0].Text, "checkout user\\_42")
	assert.Contains(t, sender.sent[0].Text, "`pq: 'bad' thing`")
}

func TestTelegramLogger_Disabled(t *testing.T) {
	t.Run("no chat", func(t *testing.T) {
		sender := &recordingSender{}
		cfg := testConfig()
		cfg.LogTelegramChatID = 0
		NewTelegramLogger(sender, cfg).LogError(errors.New("x"), "ctx")
		assert.Empty(t, sender.sent)
	})

	t.Run("no topic", func(t *testing.T) {
		sender := &recordingSender{}
		cfg := testConfig()
		cfg.LogTopicPurchase = 0
		NewTelegramLogger(sender, cfg).LogPurchase(&domain.Order{}, 0)
		assert.Empty(t, sender.sent)
	})
}

func TestFormatError(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := formatError(errors.New("boom"), "ctx", at)
	assert.Equal(t, "❌ *Error*\n\n*Context:* ctx\n*Error:* `boom`\n*Time:* 2026-01-02 03:04:05", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	long := strings.Repeat("я", MaxMessageLen+10)
	got := Truncate(long, MaxMessageLen)
	assert.Equal(t, MaxMessageLen, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, truncatedSuffix))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "a\\_b \\*c\\* \\[d]", EscapeMarkdown("a_b *c* [d]"))
}
