package notify

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramRelay pushes broadcast notifications into a staff chat. It only
// ever sends; inbound updates are ignored.
type TelegramRelay struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

func NewTelegramRelay(token string, chatID int64) (*TelegramRelay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Notification relay authorized on account %s", bot.Self.UserName)
	return &TelegramRelay{BotAPI: bot, ChatID: chatID}, nil
}

func (r *TelegramRelay) Broadcast(text string) error {
	_, err := r.BotAPI.Send(tgbotapi.NewMessage(r.ChatID, text))
	return err
}
