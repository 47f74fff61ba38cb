// Package notify pushes alert matches to Telegram.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobpilot-engine/internal/domain"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// SendJobs posts one message per batch; Telegram truncates very long
// messages, so cap the list rather than relying on that.
func (t *Telegram) SendJobs(keywords string, jobs []domain.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New matches for %q:\n\n", keywords)
	for _, j := range jobs {
		fmt.Fprintf(&b, "• %s — %s (%s)\n%s\n", j.Title, j.Company, j.Location, j.OriginalURL)
		if j.Salary != "" {
			fmt.Fprintf(&b, "  %s\n", j.Salary)
		}
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}
