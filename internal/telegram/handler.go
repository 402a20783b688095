package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/senseilabs/sensei-bot/internal/config"
	"github.com/senseilabs/sensei-bot/internal/workflow"
)

// Bot connects the workflow controller to the Telegram Bot API. It holds no
// per-user state; every update is handled independently.
type Bot struct {
	api        *tgbotapi.BotAPI
	controller *workflow.Controller
}

func NewBot(token string, controller *workflow.Controller) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:        api,
		controller: controller,
	}, nil
}

// Start runs the long-polling update loop. Each update is handled on its own
// goroutine so a slow audit for one user never blocks the others.
func (b *Bot) Start() {
	log := config.WithContext(context.Background())
	log.Infof("Authorized on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for update := range updates {
		go b.HandleUpdate(context.Background(), update)
	}
}

// HandleUpdate processes one Telegram update: a text message or an inline
// keyboard press. Callback data carries the same tokens the controller
// accepts as typed text, so both paths converge on HandleMessage.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := config.WithContext(ctx)

	switch {
	case update.Message != nil && update.Message.Text != "":
		chatID := update.Message.Chat.ID
		b.sendTyping(chatID)

		reply, err := b.controller.HandleMessage(ctx, chatID, update.Message.Text)
		if err != nil {
			log.WithError(err).Warnf("Message from chat %d not fully handled", chatID)
		}
		b.sendReply(chatID, reply)

	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			log.WithError(err).Error("Failed to answer callback query")
		}

		chatID := callback.Message.Chat.ID
		reply, err := b.controller.HandleMessage(ctx, chatID, callback.Data)
		if err != nil {
			log.WithError(err).Warnf("Callback from chat %d not fully handled", chatID)
		}
		b.sendReply(chatID, reply)
	}
}

// sendTyping shows the typing indicator while an audit may be running.
func (b *Bot) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(action); err != nil {
		config.WithContext(context.Background()).WithError(err).Debug("Failed to send chat action")
	}
}

func (b *Bot) sendReply(chatID int64, reply *workflow.Reply) {
	if reply == nil {
		return
	}
	log := config.WithContext(context.Background())

	if reply.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  reply.Document.Name,
			Bytes: reply.Document.Bytes,
		})
		doc.Caption = reply.Text
		if _, err := b.api.Send(doc); err != nil {
			log.WithError(err).Error("Failed to send document")
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, button := range reply.Buttons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).Error("Failed to send message")
	}
}
