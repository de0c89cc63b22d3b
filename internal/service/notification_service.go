package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bookline/reservation-service/internal/config"
	"github.com/bookline/reservation-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReservationCreated, n.handleReservationCreated)
	n.dispatcher.Subscribe(events.EventReservationStatusChanged, n.handleReservationStatusChanged)
}

func (n *NotificationService) handleReservationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReservationCreated", zap.String("reservation_id", event.ReservationID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReservationStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ReservationStatusChanged", zap.String("reservation_id", event.ReservationID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("reservation_id", event.ReservationID),
		zap.String("event_type", string(event.Type)))
}
