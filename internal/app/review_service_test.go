package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"homework_review_bot/internal/domain/checkpoint"
	"homework_review_bot/internal/domain/homework"
)

// fakePracticumClient serves a canned decoded response or a canned error.
type fakePracticumClient struct {
	payload  any
	err      error
	requests []int64
}

func (f *fakePracticumClient) HomeworkStatuses(_ context.Context, fromDate int64) (any, error) {
	f.requests = append(f.requests, fromDate)
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

// memoryCheckpointRepository is an in-memory checkpoint.Repository.
type memoryCheckpointRepository struct {
	ts      int64
	exists  bool
	loadErr error
	saveErr error
	saves   []int64
}

func (m *memoryCheckpointRepository) Load(context.Context) (int64, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	if !m.exists {
		return 0, checkpoint.ErrCheckpointNotFound
	}
	return m.ts, nil
}

func (m *memoryCheckpointRepository) Save(_ context.Context, ts int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ts = ts
	m.exists = true
	m.saves = append(m.saves, ts)
	return nil
}

func payloadFromJSON(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return payload
}

func newTestService(api *fakePracticumClient, tg *fakeTelegramClient, cp *memoryCheckpointRepository) (*ReviewService, *fakeTelegramClient) {
	notifierTg := &fakeTelegramClient{}
	notifier := NewErrorNotifier(notifierTg, 100, discardLogger())
	svc := NewReviewService(api, tg, cp, notifier, discardLogger(), 100)
	svc.now = func() time.Time { return time.Unix(1690000600, 0) }
	return svc, notifierTg
}

func TestRunCycleSendsNotificationAndAdvancesCheckpoint(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": [{"homework_name": "hw1", "status": "approved"}]}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1690000000, exists: true}
	svc, notified := newTestService(api, tg, cp)

	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	if len(api.requests) != 1 || api.requests[0] != 1690000000 {
		t.Fatalf("expected one fetch from checkpoint 1690000000, got %v", api.requests)
	}
	if len(tg.sent) != 1 {
		t.Fatalf("expected exactly 1 message, got %d: %v", len(tg.sent), tg.sent)
	}
	want := `Changed review status of work "hw1". Работа проверена: ревьюеру всё понравилось.`
	if tg.sent[0] != want {
		t.Fatalf("message = %q, want %q", tg.sent[0], want)
	}
	if cp.ts != 1690000600 {
		t.Fatalf("checkpoint = %d, want 1690000600", cp.ts)
	}
	if len(notified.sent) != 0 {
		t.Fatalf("unexpected error notifications: %v", notified.sent)
	}
}

func TestRunCycleFirstRunQueriesFromZero(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": []}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{}
	svc, _ := newTestService(api, tg, cp)

	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if len(api.requests) != 1 || api.requests[0] != 0 {
		t.Fatalf("expected fetch from 0, got %v", api.requests)
	}
	if len(tg.sent) != 0 {
		t.Fatalf("expected no messages for empty list, got %v", tg.sent)
	}
	if cp.ts != 1690000600 {
		t.Fatalf("checkpoint = %d, want 1690000600", cp.ts)
	}
}

func TestRunCycleAuthErrorNotifiesOnceAndKeepsCheckpoint(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"code": "not_authenticated"}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1690000000, exists: true}
	svc, notified := newTestService(api, tg, cp)

	// The same failure across consecutive cycles produces one notification.
	for i := 0; i < 3; i++ {
		if err := svc.RunCycle(context.Background()); err == nil {
			t.Fatal("expected cycle error, got nil")
		}
	}

	if len(notified.sent) != 1 {
		t.Fatalf("expected exactly 1 error notification, got %d: %v", len(notified.sent), notified.sent)
	}
	if len(tg.sent) != 0 {
		t.Fatalf("expected no status messages, got %v", tg.sent)
	}
	if len(cp.saves) != 0 || cp.ts != 1690000000 {
		t.Fatalf("checkpoint must not advance on failure, got saves=%v ts=%d", cp.saves, cp.ts)
	}
}

func TestRunCycleErrorTextChangesAreNotifiedAgain(t *testing.T) {
	api := &fakePracticumClient{err: errors.New("dial tcp: connection refused")}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1, exists: true}
	svc, notified := newTestService(api, tg, cp)

	svc.RunCycle(context.Background())
	svc.RunCycle(context.Background())
	api.err = errors.New("dial tcp: i/o timeout")
	svc.RunCycle(context.Background())

	if len(notified.sent) != 2 {
		t.Fatalf("expected 2 notifications for 2 distinct failures, got %d: %v", len(notified.sent), notified.sent)
	}
}

func TestRunCycleMalformedRecordAbortsCycle(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": [{"status": "approved"}]}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1, exists: true}
	svc, notified := newTestService(api, tg, cp)

	err := svc.RunCycle(context.Background())
	if !errors.Is(err, homework.ErrMalformedReply) {
		t.Fatalf("expected ErrMalformedReply, got %v", err)
	}
	if len(tg.sent) != 0 {
		t.Fatalf("expected no messages, got %v", tg.sent)
	}
	if len(notified.sent) != 1 {
		t.Fatalf("expected 1 error notification, got %v", notified.sent)
	}
	if len(cp.saves) != 0 {
		t.Fatalf("checkpoint must not advance, got saves=%v", cp.saves)
	}
}

func TestRunCycleUnknownStatusAbortsRemainingRecords(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": [
		{"homework_name": "hw1", "status": "approved"},
		{"homework_name": "hw2", "status": "lost"},
		{"homework_name": "hw3", "status": "rejected"}
	]}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1, exists: true}
	svc, _ := newTestService(api, tg, cp)

	err := svc.RunCycle(context.Background())
	if !errors.Is(err, homework.ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
	// Records before the bad one were already delivered, the rest were not.
	if len(tg.sent) != 1 {
		t.Fatalf("expected 1 message before the abort, got %v", tg.sent)
	}
	if len(cp.saves) != 0 {
		t.Fatalf("checkpoint must not advance, got saves=%v", cp.saves)
	}
}

func TestRunCycleDeliveryFailureDoesNotAbort(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": [
		{"homework_name": "hw1", "status": "approved"},
		{"homework_name": "hw2", "status": "rejected"}
	]}`)}
	tg := &fakeTelegramClient{sendErr: errors.New("bot connection down")}
	cp := &memoryCheckpointRepository{ts: 1, exists: true}
	svc, notified := newTestService(api, tg, cp)

	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	// Delivery failures are swallowed: the cycle still succeeds, the
	// checkpoint advances, and nothing reaches the error notifier.
	if cp.ts != 1690000600 {
		t.Fatalf("checkpoint = %d, want 1690000600", cp.ts)
	}
	if len(notified.sent) != 0 {
		t.Fatalf("delivery failures must not be bridged, got %v", notified.sent)
	}
}

func TestRunCycleCheckpointSaveFailureIsReported(t *testing.T) {
	api := &fakePracticumClient{payload: payloadFromJSON(t, `{"homeworks": []}`)}
	tg := &fakeTelegramClient{}
	cp := &memoryCheckpointRepository{ts: 1, exists: true, saveErr: errors.New("disk full")}
	svc, notified := newTestService(api, tg, cp)

	if err := svc.RunCycle(context.Background()); err == nil {
		t.Fatal("expected error from checkpoint save, got nil")
	}
	if len(notified.sent) != 1 {
		t.Fatalf("expected 1 error notification, got %v", notified.sent)
	}
}
