package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyjain/hyjain-api/internal/mail"
	"github.com/hyjain/hyjain-api/internal/metrics"
	"github.com/hyjain/hyjain-api/internal/model"
)

// Notification errors.
var (
	ErrEmailRequired  = errors.New("email is required")
	ErrUnknownKind    = errors.New("unknown notification kind")
	ErrDeliveryFailed = errors.New("failed to send email")
)

// Locator resolves a display location for a source address. It never fails.
type Locator interface {
	Locate(ctx context.Context, addr string) model.Location
}

// MessageComposer renders a notification email.
type MessageComposer interface {
	Compose(req model.NotificationRequest, loc *model.Location) (*mail.Message, error)
}

// SubscriberStore persists newsletter subscribers.
type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, email string) (*model.Subscriber, error)
}

// deliveryPolicy is how one notification kind reports its outcome.
// A soft kind answers successfully with softMessage when delivery fails.
type deliveryPolicy struct {
	successMessage string
	soft           bool
	softMessage    string
}

var deliveryPolicies = map[model.NotificationKind]deliveryPolicy{
	model.NotificationSignup:   {successMessage: "Signup notification email sent."},
	model.NotificationLogin:    {successMessage: "Login notification email sent."},
	model.NotificationEnquiry:  {successMessage: "Enquiry notification email sent."},
	model.NotificationFeedback: {successMessage: "Feedback notification email sent."},
	model.NotificationSubscription: {
		successMessage: "Subscription successful!",
		soft:           true,
		softMessage:    "Subscription successful! Email might be delayed.",
	},
}

// Outcome is the caller-facing result of a notification.
type Outcome struct {
	Message string
	// Delivered is false when a soft kind absorbed a failure.
	Delivered bool
}

// NotificationService runs the notify workflows: persist (subscription only),
// enrich with location (signup and login), compose, and hand off to the relay.
type NotificationService struct {
	locator     Locator
	composer    MessageComposer
	mailer      mail.Mailer
	subscribers SubscriberStore
	logger      *slog.Logger
	metrics     metrics.Recorder
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	locator Locator,
	composer MessageComposer,
	mailer mail.Mailer,
	subscribers SubscriberStore,
	logger *slog.Logger,
	recorder metrics.Recorder,
) *NotificationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		locator:     locator,
		composer:    composer,
		mailer:      mailer,
		subscribers: subscribers,
		logger:      logger,
		metrics:     recorder,
	}
}

// Notify sends the notification described by req. It returns ErrEmailRequired
// before any provider call when the email is empty, and ErrDeliveryFailed
// when a hard kind cannot be delivered.
func (s *NotificationService) Notify(ctx context.Context, req model.NotificationRequest) (*Outcome, error) {
	policy, ok := deliveryPolicies[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if req.Email == "" {
		s.metrics.IncNotification(string(req.Kind), metrics.StatusRejected)
		return nil, ErrEmailRequired
	}

	if err := s.deliver(ctx, req); err != nil {
		s.logger.Error("notification_failed",
			"kind", req.Kind,
			"error", err,
		)
		if policy.soft {
			s.metrics.IncNotification(string(req.Kind), metrics.StatusSoftFailure)
			return &Outcome{Message: policy.softMessage}, nil
		}
		s.metrics.IncNotification(string(req.Kind), metrics.StatusError)
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.metrics.IncNotification(string(req.Kind), metrics.StatusSuccess)
	s.logger.Info("notification_sent", "kind", req.Kind)
	return &Outcome{Message: policy.successMessage, Delivered: true}, nil
}

func (s *NotificationService) deliver(ctx context.Context, req model.NotificationRequest) error {
	if req.Kind == model.NotificationSubscription {
		if _, err := s.subscribers.CreateSubscriber(ctx, req.Email); err != nil {
			return fmt.Errorf("failed to persist subscriber: %w", err)
		}
	}

	var loc *model.Location
	if req.Kind.NeedsLocation() {
		resolved := s.locator.Locate(ctx, req.SourceIP)
		loc = &resolved
	}

	msg, err := s.composer.Compose(req, loc)
	if err != nil {
		return fmt.Errorf("failed to compose email: %w", err)
	}

	start := time.Now()
	err = s.mailer.Send(ctx, msg)
	s.metrics.ObserveMailSend(time.Since(start))
	if err != nil {
		return fmt.Errorf("mail relay: %w", err)
	}
	return nil
}
