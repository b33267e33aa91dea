package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepo stores requests in memory and enforces the active-slot uniqueness
// the way the partial index does.
type fakeRepo struct {
	records   []Request
	createErr error
}

func (f *fakeRepo) Create(ctx context.Context, req Request) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.records {
		if existing.PreferredDate == req.PreferredDate &&
			existing.PreferredTime == req.PreferredTime &&
			existing.Status != StatusCancelled {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	f.records = append(f.records, req)
	return nil
}

func (f *fakeRepo) CountActiveSlot(ctx context.Context, date, timeStr string) (int64, error) {
	var count int64
	for _, r := range f.records {
		if r.PreferredDate == date && r.PreferredTime == timeStr && r.Status != StatusCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) BookedTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	for _, r := range f.records {
		if r.PreferredDate == date && r.Status != StatusCancelled {
			times = append(times, r.PreferredTime)
		}
	}
	return times, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Request, error) {
	var items []Request
	for _, r := range f.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		items = append(items, r)
	}
	return items, nil
}

func (f *fakeRepo) Count(ctx context.Context, filter ListFilter) (int64, error) {
	items, _ := f.List(ctx, filter, 0, 0)
	return int64(len(items)), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, patch StatusPatch, now time.Time) (Request, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = patch.Status
			f.records[i].UpdatedAt = now
			if patch.Notes != "" {
				f.records[i].Notes = patch.Notes
			}
			return f.records[i], nil
		}
	}
	return Request{}, mongo.ErrNoDocuments
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:          "  A  ",
		Email:         " A@X.com ",
		Phone:         "555",
		ServiceType:   "Consult",
		PreferredDate: futureDate(),
		PreferredTime: "10:00",
	}
}

func TestCreateNormalizesAndDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.UTC, nil)

	record, err := svc.Create(context.Background(), validCreateRequest(), "203.0.113.9")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if record.Name != "A" {
		t.Fatalf("expected trimmed name, got %q", record.Name)
	}
	if record.Email != "a@x.com" {
		t.Fatalf("expected lowercased email, got %q", record.Email)
	}
	if record.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", record.Status)
	}
	if record.IPAddress != "203.0.113.9" {
		t.Fatalf("expected ip captured, got %q", record.IPAddress)
	}
	if record.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
}

func TestCreatePastDateRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.UTC, nil)

	req := validCreateRequest()
	req.PreferredDate = "2020-01-01"

	if _, err := svc.Create(context.Background(), req, ""); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no record stored")
	}
}

func TestCreateSlotTakenPreCheck(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.UTC, nil)

	if _, err := svc.Create(context.Background(), validCreateRequest(), ""); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreateRequest(), ""); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected single stored record, got %d", len(repo.records))
	}
}

func TestCreateDuplicateKeyTranslated(t *testing.T) {
	// Pre-check sees a free slot but the insert loses the race: the store's
	// duplicate-key rejection must surface as the same conflict error.
	repo := &fakeRepo{createErr: mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}}
	svc := NewService(repo, time.UTC, nil)

	if _, err := svc.Create(context.Background(), validCreateRequest(), ""); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCancelledSlotReusable(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.UTC, nil)

	first, err := svc.Create(context.Background(), validCreateRequest(), "")
	if err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), first.ID, StatusUpdateRequest{Status: StatusCancelled}); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	second, err := svc.Create(context.Background(), validCreateRequest(), "")
	if err != nil {
		t.Fatalf("expected cancelled slot to be reusable, got %v", err)
	}
	if second.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", second.Status)
	}
}

func TestIsSlotTaken(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, time.UTC, nil)

	taken, err := svc.IsSlotTaken(context.Background(), futureDate(), "10:00")
	if err != nil {
		t.Fatalf("IsSlotTaken error: %v", err)
	}
	if taken {
		t.Fatalf("expected free slot")
	}

	if _, err := svc.Create(context.Background(), validCreateRequest(), ""); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	taken, err = svc.IsSlotTaken(context.Background(), futureDate(), "10:00")
	if err != nil {
		t.Fatalf("IsSlotTaken error: %v", err)
	}
	if !taken {
		t.Fatalf("expected slot to be taken")
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	repo := &fakeRepo{records: []Request{{ID: "abc", Status: StatusPending}}}
	svc := NewService(repo, time.UTC, nil)

	if _, err := svc.UpdateStatus(context.Background(), "abc", StatusUpdateRequest{Status: "archived"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.records[0].Status != StatusPending {
		t.Fatalf("expected record unchanged, got %q", repo.records[0].Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, time.UTC, nil)

	if _, err := svc.UpdateStatus(context.Background(), "missing", StatusUpdateRequest{Status: StatusConfirmed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakeNotifier struct {
	admin        int
	confirmation int
	adminErr     error
}

func (f *fakeNotifier) SendScheduleAdminNotification(ctx context.Context, req Request) (string, error) {
	f.admin++
	return "msg-1", f.adminErr
}

func (f *fakeNotifier) SendScheduleConfirmation(ctx context.Context, req Request) (string, error) {
	f.confirmation++
	return "msg-2", nil
}

func TestNotifySendsBoth(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(&fakeRepo{}, time.UTC, notifier)

	if err := svc.Notify(context.Background(), Request{Email: "a@x.com"}); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if notifier.admin != 1 || notifier.confirmation != 1 {
		t.Fatalf("expected both emails sent, got admin=%d confirmation=%d", notifier.admin, notifier.confirmation)
	}
}

func TestNotifyReportsFailure(t *testing.T) {
	notifier := &fakeNotifier{adminErr: errors.New("smtp down")}
	svc := NewService(&fakeRepo{}, time.UTC, notifier)

	if err := svc.Notify(context.Background(), Request{Email: "a@x.com"}); err == nil {
		t.Fatalf("expected error when one send fails")
	}
}

func TestNotifyWithoutNotifier(t *testing.T) {
	svc := NewService(&fakeRepo{}, time.UTC, nil)
	if err := svc.Notify(context.Background(), Request{}); err != nil {
		t.Fatalf("expected nil error without notifier, got %v", err)
	}
}
