package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSlotTaken     = errors.New("time slot already booked")
	ErrPastDate      = errors.New("preferred date is in the past")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("schedule not found")
)

type Notifier interface {
	SendScheduleAdminNotification(ctx context.Context, req Request) (string, error)
	SendScheduleConfirmation(ctx context.Context, req Request) (string, error)
}

type Service struct {
	repo     Repository
	location *time.Location
	notifier Notifier
}

func NewService(repo Repository, location *time.Location, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		location: location,
		notifier: notifier,
	}
}

// IsSlotTaken reports whether a non-cancelled request already holds the slot.
// Advisory only: the result can be stale under concurrent submissions, and
// the unique index remains the authority.
func (s *Service) IsSlotTaken(ctx context.Context, date, timeStr string) (bool, error) {
	count, err := s.repo.CountActiveSlot(ctx, date, timeStr)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest, ip string) (Request, error) {
	date := strings.TrimSpace(req.PreferredDate)
	timeStr := strings.TrimSpace(req.PreferredTime)

	past, err := IsDatePast(date, s.location, time.Now())
	if err != nil {
		return Request{}, err
	}
	if past {
		return Request{}, ErrPastDate
	}

	taken, err := s.IsSlotTaken(ctx, date, timeStr)
	if err != nil {
		return Request{}, err
	}
	if taken {
		return Request{}, ErrSlotTaken
	}

	now := time.Now().In(s.location)
	record := Request{
		ID:            primitive.NewObjectID().Hex(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Company:       strings.TrimSpace(req.Company),
		ServiceType:   strings.TrimSpace(req.ServiceType),
		PreferredDate: date,
		PreferredTime: timeStr,
		Message:       strings.TrimSpace(req.Message),
		Status:        StatusPending,
		IPAddress:     ip,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		// Lost the race against a concurrent booking: the pre-check passed
		// but the unique index rejected the insert. Same outcome as the
		// pre-check for the caller.
		if mongo.IsDuplicateKeyError(err) {
			return Request{}, ErrSlotTaken
		}
		return Request{}, err
	}

	return record, nil
}

func (s *Service) BookedTimes(ctx context.Context, date string) ([]string, error) {
	return s.repo.BookedTimes(ctx, strings.TrimSpace(date))
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Request, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	filter.Date = strings.TrimSpace(filter.Date)

	items, err := s.repo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (Request, error) {
	id = strings.TrimSpace(id)
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !IsValidStatus(status) {
		return Request{}, ErrInvalidStatus
	}

	patch := StatusPatch{
		Status:     status,
		ActualDate: strings.TrimSpace(req.ActualDate),
		ActualTime: strings.TrimSpace(req.ActualTime),
		Notes:      strings.TrimSpace(req.Notes),
	}

	updated, err := s.repo.UpdateStatus(ctx, id, patch, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return updated, nil
}

// Notify dispatches the admin notification and the submitter confirmation
// concurrently and waits for both; the booking is committed regardless.
func (s *Service) Notify(ctx context.Context, req Request) error {
	if s.notifier == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.notifier.SendScheduleAdminNotification(ctx, req)
		return err
	})
	g.Go(func() error {
		_, err := s.notifier.SendScheduleConfirmation(ctx, req)
		return err
	})
	return g.Wait()
}
