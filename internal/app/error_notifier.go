// internal/app/error_notifier.go
package app

import (
	"sync"

	domainTelegram "homework_review_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// ErrorNotifier forwards cycle failures to the operator's Telegram chat,
// suppressing consecutive repeats of the identical text. The last-sent text
// lives for the process lifetime and resets on restart.
type ErrorNotifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	logger         *logrus.Logger

	mu       sync.Mutex
	lastSent string
}

func NewErrorNotifier(tc domainTelegram.Client, chatID int64, logger *logrus.Logger) *ErrorNotifier {
	return &ErrorNotifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// NotifyIfChanged sends text to the chat unless it matches the previously
// sent error text. The text is recorded as last-sent whether or not delivery
// succeeds; a delivery failure is logged and stops here, it never re-enters
// the notifier.
func (n *ErrorNotifier) NotifyIfChanged(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if text == n.lastSent {
		n.logger.Debugf("Suppressing repeated error notification: %s", text)
		return
	}
	n.lastSent = text

	if err := n.telegramClient.SendMessage(n.chatID, text); err != nil {
		n.logger.Errorf("Bot failed to send error notification %q: %v", text, err)
		return
	}
	n.logger.Debugf("Bot sent error notification: %q", text)
}
