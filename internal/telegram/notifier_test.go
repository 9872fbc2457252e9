package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, msg)
	}
	return tgbotapi.Message{}, b.err
}

func testContact() Contact {
	return Contact{
		Reference: "0f6c-1",
		Name:      "Jane_Doe",
		Email:     "jane@example.com",
		Subject:   "VIP (monthly)",
		Message:   "Price is 1.0825!",
		Status:    "sent",
	}
}

func TestNotifier_Disabled(t *testing.T) {
	n := NewNotifier(&config.Config{}, logger.Discard())

	assert.False(t, n.Enabled())
	n.NotifyContact(testContact())
}

func TestNotifier_NotifyContact(t *testing.T) {
	bot := &fakeBot{}
	n := &Notifier{bot: bot, chatID: 42, enabled: true, logger: logger.Discard()}

	n.NotifyContact(testContact())

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, bot.sent[0].ParseMode)
	assert.Contains(t, bot.sent[0].Text, `Jane\_Doe`)
	assert.Contains(t, bot.sent[0].Text, `VIP \(monthly\)`)
	assert.Contains(t, bot.sent[0].Text, `Price is 1\.0825\!`)
}

func TestNotifier_SendErrorIsSwallowed(t *testing.T) {
	bot := &fakeBot{err: errors.New("chat not found")}
	n := &Notifier{bot: bot, chatID: 42, enabled: true, logger: logger.Discard()}

	n.NotifyError("contact", errors.New("mail failed."))

	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, `mail failed\.`)
}

func TestFormatContact(t *testing.T) {
	text := FormatContact(testContact())

	assert.Contains(t, text, `0f6c\-1`)
	assert.Contains(t, text, `jane@example\.com`)
	assert.Contains(t, text, "*Delivery:* sent")
}
