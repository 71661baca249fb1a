package notification

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/telegram"
	"github.com/pkg/errors"
)

// NewTelegramNotifier builds a telegram service that posts HTML messages to
// the given chats.
func NewTelegramNotifier(token string, chatIDs []int64) (*telegram.Telegram, error) {
	tg, err := telegram.New(token)
	if err != nil {
		return nil, errors.Wrap(err, "creating telegram service")
	}
	tg.SetParseMode(tgbotapi.ModeHTML)
	tg.AddReceivers(chatIDs...)
	return tg, nil
}

var _ notify.Notifier = (*telegram.Telegram)(nil)
