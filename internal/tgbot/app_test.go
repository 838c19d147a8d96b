package tgbot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-entry/internal/models"
)

type fakeSender struct {
	sent   []tgbotapi.MessageConfig
	failOn int64
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	if msg.ChatID == f.failOn {
		return tgbotapi.Message{}, errors.New("chat not found")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func paidRecord() models.ForwardedRecord {
	return models.ForwardedRecord{
		Entry:   models.Entry{"name": "Sam", "email": "sam@example.org", "gender": "F"},
		Payment: models.PaymentConfirmation{Status: models.StatusPaid, SessionID: "cs_1", Amount: "34.00"},
	}
}

func TestEntryPaidNotifiesEveryAdmin(t *testing.T) {
	f := &fakeSender{}
	n := &Notifier{bot: f, adminIDs: []int64{11, 22}}

	require.NoError(t, n.EntryPaid(context.Background(), paidRecord()))
	require.Len(t, f.sent, 2)
	assert.Equal(t, int64(11), f.sent[0].ChatID)
	assert.Equal(t, int64(22), f.sent[1].ChatID)
	assert.Contains(t, f.sent[0].Text, "Name: Sam")
	assert.Contains(t, f.sent[0].Text, "Amount: £34.00")
	assert.Contains(t, f.sent[0].Text, "Club: -")
}

func TestEntryPaidCollectsFailures(t *testing.T) {
	f := &fakeSender{failOn: 11}
	n := &Notifier{bot: f, adminIDs: []int64{11, 22}}

	err := n.EntryPaid(context.Background(), paidRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat 11")
	assert.Len(t, f.sent, 1)
}
