package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestHandleCallbackIgnoresMessagelessQueries(t *testing.T) {
	b := &Bot{userStates: make(map[int64]UserState)}

	// Must return without touching the API or the database
	b.handleCallback(context.Background(), nil)
	b.handleCallback(context.Background(), &tgbotapi.CallbackQuery{
		ID:   "abc",
		From: &tgbotapi.User{ID: 42},
		Data: "prof:other",
	})
	b.handleCallback(context.Background(), &tgbotapi.CallbackQuery{
		ID:      "def",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}},
		Data:    "prof:other",
	})
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{600, "10h"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
