// Package bot читает обновления Telegram и передает их диалогу.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Виды обновлений для метрик
const (
	updateCallback = "callback"
	updateCommand  = "command"
	updateContact  = "contact"
	updateText     = "text"
	updateIgnored  = "ignored"
)

const (
	commandStart  = "start"
	commandPrices = "prices"
)

// Bot цикл обработки обновлений
// Обновления обрабатываются последовательно, по одному
type Bot struct {
	api           TelegramAPI
	handler       Handler
	metrics       Metrics
	logger        Logger
	updateTimeout int
}

// NewBot создает бота
// updateTimeout таймаут long polling в секундах
func NewBot(api TelegramAPI, handler Handler, updateTimeout int, metrics Metrics, logger Logger) *Bot {
	return &Bot{
		api:           api,
		handler:       handler,
		metrics:       metrics,
		logger:        logger,
		updateTimeout: updateTimeout,
	}
}

// Run обрабатывает обновления до отмены контекста или закрытия канала
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(cfg)
	b.logger.Info("Bot: started receiving updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot: stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Bot: updates channel closed")
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Bot: panic while handling update %d: %v", update.UpdateID, r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	default:
		b.observe(updateIgnored)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	b.observe(updateCallback)

	// убираем "часики" на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Bot: failed to answer callback %s: %v", query.ID, err)
	}

	if query.Message == nil || query.Message.Chat == nil {
		b.logger.Warn("Bot: callback %s without message", query.ID)
		return
	}

	b.handler.HandleCallback(ctx, query.Message.Chat.ID, query.Data)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		b.observe(updateIgnored)
		return
	}
	chatID := msg.Chat.ID
	name := senderName(msg)

	switch {
	case msg.Contact != nil:
		b.observe(updateContact)
		b.handler.HandlePhone(ctx, chatID, name, msg.Contact.PhoneNumber)

	case msg.IsCommand():
		b.observe(updateCommand)
		switch msg.Command() {
		case commandStart:
			b.handler.HandleStart(ctx, chatID)
		case commandPrices:
			b.handler.HandlePrices(ctx, chatID)
		default:
			b.handler.HandleText(ctx, chatID, name, msg.Text)
		}

	case msg.Text != "":
		b.observe(updateText)
		b.handler.HandleText(ctx, chatID, name, msg.Text)

	default:
		b.observe(updateIgnored)
	}
}

func (b *Bot) observe(kind string) {
	if b.metrics != nil {
		b.metrics.IncBotUpdate(kind)
	}
}

func senderName(msg *tgbotapi.Message) string {
	if msg.Contact != nil && msg.Contact.FirstName != "" {
		return strings.TrimSpace(msg.Contact.FirstName + " " + msg.Contact.LastName)
	}
	if msg.From == nil {
		return ""
	}
	return strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
}
