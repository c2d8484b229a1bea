// Package telegram pushes complaint events into an operations chat via the
// Telegram Bot API. The alerter registers with the notify hub as an ordinary
// listener, so delivery follows the same best-effort rules as every other
// subscriber.
package telegram

import (
	"encoding/json"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// Alerter forwards new-complaint events to a configured chat.
type Alerter struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
	Send   chan models.Event
}

// NewAlerter authenticates the bot and prepares the listener.
func NewAlerter(token string, chatID int64) (*Alerter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Telegram alerts authorized on account %s", bot.Self.UserName)

	return &Alerter{
		BotAPI: bot,
		ChatID: chatID,
		Send:   make(chan models.Event, 32),
	}, nil
}

func (a *Alerter) GetID() string                       { return "telegram-ops" }
func (a *Alerter) GetSendChannel() chan<- models.Event { return a.Send }

// Run drains the event channel and posts relevant events to the chat.
func (a *Alerter) Run() {
	go func() {
		for ev := range a.Send {
			text := formatAlert(ev)
			if text == "" {
				continue
			}
			msg := tgbotapi.NewMessage(a.ChatID, text)
			if _, err := a.BotAPI.Send(msg); err != nil {
				log.Printf("WARNING: Telegram alert failed: %v", err)
			}
		}
	}()
}

// Close stops the delivery goroutine.
func (a *Alerter) Close() {
	close(a.Send)
}

// formatAlert renders an event as a chat message, or "" for events the ops
// chat does not care about. Only creations are alerted; status churn would
// drown the channel.
func formatAlert(ev models.Event) string {
	if ev.Name != models.EventComplaintCreated {
		return ""
	}

	var p models.ComplaintCreatedPayload
	if err := json.Unmarshal(ev.Payload, &p); err != nil {
		log.Printf("WARNING: Undecodable %s payload: %v", ev.Name, err)
		return ""
	}

	text := fmt.Sprintf("New %s complaint %s\nCategory: %s", p.Type, p.ComplaintID, p.Category)
	if p.ValidationStatus == models.ValidationManualReview {
		text += "\n⚠️ Needs manual review"
		if p.PlateNumber != "" {
			text += " (plate: " + p.PlateNumber + ")"
		}
	}
	return text
}
