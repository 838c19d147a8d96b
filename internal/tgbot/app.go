// Package tgbot tells tournament organisers about paid entries on Telegram.
package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tournament-entry/internal/models"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	bot      sender
	adminIDs []int64
}

func New(token string, adminIDs []int64) (*Notifier, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &Notifier{bot: b, adminIDs: adminIDs}, nil
}

func (n *Notifier) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := n.bot.Send(msg)
	return err
}

// EntryPaid sends a short summary of rec to every admin chat. Failures for
// individual chats are joined into the returned error.
func (n *Notifier) EntryPaid(ctx context.Context, rec models.ForwardedRecord) error {
	text := FormatEntry(rec)
	var errs []error
	for _, id := range n.adminIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.SendText(id, text); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func FormatEntry(rec models.ForwardedRecord) string {
	e := rec.Entry
	b := strings.Builder{}
	b.WriteString("✅ New tournament entry paid\n")
	fmt.Fprintf(&b, "Name: %s\n", orDash(e["name"]))
	fmt.Fprintf(&b, "Email: %s\n", orDash(e["email"]))
	fmt.Fprintf(&b, "Gender: %s\n", orDash(e["gender"]))
	fmt.Fprintf(&b, "Club: %s\n", orDash(e["club"]))
	fmt.Fprintf(&b, "Amount: £%s\n", rec.Payment.Amount)
	fmt.Fprintf(&b, "Session: %s", rec.Payment.SessionID)
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
