// Package notify delivers the offers found by search alerts to the user.
package notify

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v3"

	"Reposition/internal/locale"
	"Reposition/pkg/repoapi"
)

// Notifier notifies the user of new offers matching a search alert
type Notifier interface {
	Notify(ctx context.Context, alert repoapi.SearchAlert, offers []repoapi.Offer) error
}

// LogNotifier writes the notifications to the log
type LogNotifier struct{}

// Notify implements the Notifier interface
func (LogNotifier) Notify(_ context.Context, alert repoapi.SearchAlert, offers []repoapi.Offer) error {
	for _, o := range offers {
		log.WithFields(log.Fields{
			"alert": alert.ID,
			"offer": o.ID,
		}).Info("new offer")
	}
	return nil
}

// TelegramConfig represents a configuration for the Telegram notifier
type TelegramConfig struct {
	Token  string `toml:"token"`
	ChatID int64  `toml:"chat_id"`
}

// Enabled reports whether a bot has been configured
func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

var sendAlertMessageOption = &tb.SendOptions{ParseMode: tb.ModeHTML, DisableWebPagePreview: true}

const maxSendRetries = 3

// sender is the part of tb.Bot the notifier uses
type sender interface {
	Send(to tb.Recipient, what interface{}, opts ...interface{}) (*tb.Message, error)
}

// TelegramNotifier sends the notifications to a Telegram chat
type TelegramNotifier struct {
	bot     sender
	chat    tb.ChatID
	loc     *locale.Locale
	backoff func() backoff.BackOff
}

// NewTelegramNotifier creates a bot with the given configuration, it doesn't contact Telegram until sending
func NewTelegramNotifier(config TelegramConfig, loc *locale.Locale) (*TelegramNotifier, error) {
	b, err := tb.NewBot(tb.Settings{
		Token:   config.Token,
		Offline: true,
		Verbose: log.GetLevel() >= log.TraceLevel,
	})
	if err != nil {
		return nil, errors.Wrap(err, "notify: error creating bot")
	}
	return newTelegramNotifier(b, config.ChatID, loc), nil
}

func newTelegramNotifier(s sender, chatID int64, loc *locale.Locale) *TelegramNotifier {
	return &TelegramNotifier{
		bot:  s,
		chat: tb.ChatID(chatID),
		loc:  loc,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = time.Minute
			return b
		},
	}
}

// Notify implements the Notifier interface, retrying failed sends with an exponential backoff
// the offers are split into as many messages as needed to fit Telegram's message length limit
func (n *TelegramNotifier) Notify(ctx context.Context, alert repoapi.SearchAlert, offers []repoapi.Offer) error {
	for _, m := range SplitAlertOffers(alert, offers, n.loc) {
		text := m.String()
		send := func() error {
			_, err := n.bot.Send(n.chat, text, sendAlertMessageOption)
			if err == nil {
				return nil
			}
			var flood *tb.FloodError
			if errors.As(err, &flood) && flood.RetryAfter > 0 {
				log.WithField("alert", alert.ID).Warnf("flood limit hit, retrying after %ds", flood.RetryAfter)
				return err
			}
			if errors.Is(err, tb.ErrBlockedByUser) || errors.Is(err, tb.ErrChatNotFound) || errors.Is(err, tb.ErrUnauthorized) {
				return backoff.Permanent(err)
			}
			return err
		}
		b := backoff.WithContext(backoff.WithMaxRetries(n.backoff(), maxSendRetries), ctx)
		if err := backoff.Retry(send, b); err != nil {
			return errors.Wrapf(err, "notify: error sending offers of alert %d", alert.ID)
		}
	}
	return nil
}
