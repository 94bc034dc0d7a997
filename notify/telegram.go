package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/telebot.v3"
)

// ErrNoToken is returned when a Telegram notifier is requested without a bot token.
var ErrNoToken = errors.New("telegram token is not set")

// Telegram sends messages to a single chat through the Bot API.
type Telegram struct {
	Bot  *telebot.Bot
	Chat *telebot.Chat
}

// NewTelegram creates the bot client. Offline skips the getMe round trip,
// which lets tests build a notifier without network access.
func NewTelegram(token string, chatID int64, offline bool) (*Telegram, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: offline,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{Bot: bot, Chat: &telebot.Chat{ID: chatID}}, nil
}

func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.Bot.Send(t.Chat, msg.Text); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
