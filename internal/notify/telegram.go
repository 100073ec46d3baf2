package notify

import (
	"log"

	"skillswap/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers session notifications to users who linked a
// Telegram account. Users without a chat id fall through to the log.
type TelegramNotifier struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage
}

func NewTelegramNotifier(token string, s storage.Storage) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Notifier authorized on Telegram account %s", bot.Self.UserName)

	return &TelegramNotifier{BotAPI: bot, Storage: s}, nil
}

func (n *TelegramNotifier) Notify(userID, message string) {
	user, err := n.Storage.GetUserByID(userID)
	if err != nil {
		log.Printf("NOTIFY %s failed, user lookup: %v", userID, err)
		return
	}
	if user.TelegramChatID == nil {
		log.Printf("NOTIFY %s (no telegram link): %s", userID, message)
		return
	}

	msg := tgbotapi.NewMessage(*user.TelegramChatID, message)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("NOTIFY %s failed, telegram send: %v", userID, err)
	}
}
