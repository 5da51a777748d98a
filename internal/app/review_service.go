// internal/app/review_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_review_bot/internal/domain/checkpoint"
	"homework_review_bot/internal/domain/homework"
	"homework_review_bot/internal/domain/practicum"
	domainTelegram "homework_review_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// CycleRunner is the single operation the poll scheduler drives.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// ReviewService runs one poll cycle at a time: load the checkpoint, fetch
// review statuses changed since it, turn each record into a message, deliver
// the messages, and advance the checkpoint. A failure anywhere leaves the
// checkpoint untouched so the next cycle re-queries the same window.
type ReviewService struct {
	apiClient      practicum.Client
	telegramClient domainTelegram.Client
	checkpoints    checkpoint.Repository
	notifier       *ErrorNotifier
	logger         *logrus.Logger
	chatID         int64
	now            func() time.Time
}

func NewReviewService(
	api practicum.Client,
	tc domainTelegram.Client,
	cp checkpoint.Repository,
	notifier *ErrorNotifier,
	logger *logrus.Logger,
	chatID int64,
) *ReviewService {
	return &ReviewService{
		apiClient:      api,
		telegramClient: tc,
		checkpoints:    cp,
		notifier:       notifier,
		logger:         logger,
		chatID:         chatID,
		now:            time.Now,
	}
}

// RunCycle executes a single poll cycle. Any failure is logged at error
// level, reported through the dedup notifier and returned; it never stops
// the polling schedule.
func (s *ReviewService) RunCycle(ctx context.Context) error {
	if err := s.poll(ctx); err != nil {
		text := fmt.Sprintf("Сбой в работе программы: %v", err)
		s.logger.Error(text)
		s.notifier.NotifyIfChanged(text)
		return err
	}
	return nil
}

func (s *ReviewService) poll(ctx context.Context) error {
	since, err := s.checkpoints.Load(ctx)
	if err != nil {
		if !errors.Is(err, checkpoint.ErrCheckpointNotFound) {
			return err
		}
		s.logger.Debug("No previous checkpoint found, querying from zero.")
		since = 0
	}

	// Taken before the fetch: statuses that change while the cycle runs
	// fall into the next window instead of being skipped.
	cycleStart := s.now()

	payload, err := s.apiClient.HomeworkStatuses(ctx, since)
	if err != nil {
		return err
	}

	homeworks, err := homework.CheckResponse(payload)
	if err != nil {
		return err
	}
	if len(homeworks) == 0 {
		s.logger.Debug("Homework list is empty.")
	}

	for _, record := range homeworks {
		message, err := homework.ParseStatus(record)
		if err != nil {
			return err
		}
		s.send(message)
	}

	if err := s.checkpoints.Save(ctx, cycleStart.Unix()); err != nil {
		return err
	}
	s.logger.Debugf("Checkpoint advanced to %d.", cycleStart.Unix())
	return nil
}

// send delivers one status message. Delivery failures are logged with the
// message text and swallowed; they must not abort the rest of the cycle and
// must not reach the error notifier.
func (s *ReviewService) send(message string) {
	s.logger.Debugf("Sending telegram message: %s", message)
	if err := s.telegramClient.SendMessage(s.chatID, message); err != nil {
		s.logger.Errorf("Bot failed to send message %q: %v", message, err)
		return
	}
	s.logger.Debugf("Bot sent message: %q", message)
}
