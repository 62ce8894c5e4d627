package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

const (
	eventType      = "stock.depletion_alert.requested"
	publishTimeout = 15 * time.Second
)

// Registration is the payload posted to the notification service when a
// shopper asks to be told once a depleted item is back.
type Registration struct {
	Item        string    `json:"item"`
	Subscriber  string    `json:"subscriber"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Publisher abstracts the Pub/Sub publisher handle for tests.
type Publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) PublishResult
}

// PublishResult mirrors the Pub/Sub result surface.
type PublishResult interface {
	Get(ctx context.Context) (string, error)
}

// Service posts depletion-alert registrations. Delivery is fire-and-forget:
// failures are logged and never surface to the flow that triggered them.
type Service interface {
	RegisterDepletionAlert(ctx context.Context, item, subscriber string)
}

type service struct {
	publisher Publisher
	logg      *logger.Logger
	now       func() time.Time
}

// GCPPublisher adapts a *pubsub.Publisher to the Publisher interface.
func GCPPublisher(p *gcppubsub.Publisher) Publisher {
	if p == nil {
		return nil
	}
	return gcpPublisher{p: p}
}

type gcpPublisher struct {
	p *gcppubsub.Publisher
}

func (g gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) PublishResult {
	return g.p.Publish(ctx, msg)
}

// NopPublisher returns a publisher that acknowledges every message without
// delivering it, for deployments without a notification backend.
func NopPublisher() Publisher {
	return nopPublisher{}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *gcppubsub.Message) PublishResult {
	return nopResult{}
}

type nopResult struct{}

func (nopResult) Get(context.Context) (string, error) { return "", nil }

// NewService wires the alert registrar against a publisher.
func NewService(publisher Publisher, logg *logger.Logger) (Service, error) {
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		publisher: publisher,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// RegisterDepletionAlert publishes the registration without blocking the
// caller and without propagating failures; product rendering must not care
// whether the notification service is up.
func (s *service) RegisterDepletionAlert(ctx context.Context, item, subscriber string) {
	item = strings.TrimSpace(item)
	subscriber = strings.TrimSpace(subscriber)
	if item == "" || subscriber == "" {
		s.logg.Warn(ctx, "skipping depletion alert with blank item or subscriber")
		return
	}

	payload, err := json.Marshal(Registration{
		Item:        strings.ToLower(item),
		Subscriber:  subscriber,
		RequestedAt: s.now().UTC(),
	})
	if err != nil {
		s.logg.Error(ctx, "encoding depletion alert", err)
		return
	}

	fields := map[string]any{"item": item, "subscriber": subscriber}
	logCtx := s.logg.WithFields(context.WithoutCancel(ctx), fields)

	result := s.publisher.Publish(logCtx, &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": eventType,
		},
	})

	go func() {
		waitCtx, cancel := context.WithTimeout(logCtx, publishTimeout)
		defer cancel()
		if _, err := result.Get(waitCtx); err != nil {
			s.logg.Error(logCtx, "publishing depletion alert", err)
			return
		}
		s.logg.Info(logCtx, "depletion alert registered")
	}()
}
