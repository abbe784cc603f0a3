package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender pushes ticket documents to a linked chat.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

func (t *TelegramSender) SendTicket(chatID int64, pdfPath string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(pdfPath))
	doc.Caption = "Your SkyLink ticket"
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("send telegram document: %w", err)
	}
	return nil
}
