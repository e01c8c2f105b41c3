package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to domain events.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	notifications.RegisterHandlers()
	logger.Info("notification worker started")
}
