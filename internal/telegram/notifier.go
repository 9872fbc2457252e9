package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Contact is the part of a contact submission posted to the operators' chat.
type Contact struct {
	Reference string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
}

type Notifier struct {
	bot     sender
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	if err := tgbotapi.SetLogger(log.With("component", "telegram")); err != nil {
		log.Warn("set telegram logger", "error", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

// NotifyContact posts a new contact submission. Failures are only logged.
func (n *Notifier) NotifyContact(c Contact) {
	n.send(FormatContact(c))
}

// NotifyError alerts the operators about a failure in source.
func (n *Notifier) NotifyError(source string, err error) {
	n.send(fmt.Sprintf("⚠️ *Error* \\[%s\\]\n%s", escape(source), escape(err.Error())))
}

// FormatContact renders a submission as MarkdownV2.
func FormatContact(c Contact) string {
	return fmt.Sprintf("📩 *New contact message* %s\n*From:* %s \\(%s\\)\n*Subject:* %s\n*Delivery:* %s\n\n%s",
		escape(c.Reference), escape(c.Name), escape(c.Email), escape(c.Subject), escape(c.Status), escape(c.Message))
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
