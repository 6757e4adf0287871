package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAPI часть *tgbotapi.BotAPI, используемая ботом
type TelegramAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler обработчик диалога
type Handler interface {
	HandleStart(ctx context.Context, chatID int64)
	HandlePrices(ctx context.Context, chatID int64)
	HandleCallback(ctx context.Context, chatID int64, data string)
	HandleText(ctx context.Context, chatID int64, clientName, text string)
	HandlePhone(ctx context.Context, chatID int64, clientName, phone string)
}

// Metrics счетчик входящих обновлений
type Metrics interface {
	IncBotUpdate(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
