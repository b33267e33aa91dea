package contact

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
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("contact not found")
)

type Notifier interface {
	SendContactAdminNotification(ctx context.Context, msg Message) (string, error)
	SendContactAcknowledgement(ctx context.Context, msg Message) (string, error)
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

func (s *Service) Create(ctx context.Context, req CreateRequest, ip, userAgent string) (Message, error) {
	now := time.Now().In(s.location)
	msg := Message{
		ID:        primitive.NewObjectID().Hex(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Body:      strings.TrimSpace(req.Message),
		Status:    StatusNew,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return Message{}, err
	}

	return msg, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Message, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

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

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Message, error) {
	id = strings.TrimSpace(id)
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Message{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, time.Now().In(s.location))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	return updated, nil
}

// Notify sends the admin notification and the submitter acknowledgement
// concurrently and waits for both. The record is already persisted by the
// time this runs; a failure here is the caller's to log, never to roll back.
func (s *Service) Notify(ctx context.Context, msg Message) error {
	if s.notifier == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.notifier.SendContactAdminNotification(ctx, msg)
		return err
	})
	g.Go(func() error {
		_, err := s.notifier.SendContactAcknowledgement(ctx, msg)
		return err
	})
	return g.Wait()
}
