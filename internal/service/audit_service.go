package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/recouvrement-service/internal/domain"
	"github.com/spec-kit/recouvrement-service/internal/events"
	"github.com/spec-kit/recouvrement-service/internal/repository"
)

// AuditService persists auth events as tracabilite rows. Failures are logged
// and swallowed; audit is a best-effort side channel.
type AuditService struct {
	traces     repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(traces repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{traces: traces, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to auth events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAuthLogin, a.handle(domain.AuditActionConsultation, "Connexion"))
	a.dispatcher.Subscribe(events.EventAuthRefresh, a.handle(domain.AuditActionConsultation, "Rafraichissement de session"))
	a.dispatcher.Subscribe(events.EventAuthLogout, a.handle(domain.AuditActionConsultation, "Deconnexion"))
	a.dispatcher.Subscribe(events.EventAuthLogoutAll, a.handle(domain.AuditActionModification, "Deconnexion globale (tous appareils)"))
}

func (a *AuditService) handle(action domain.AuditAction, description string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		trace := &domain.AuditTrace{
			TableCible:  "utilisateurs",
			RecordID:    event.UserID,
			Action:      action,
			UserID:      event.UserID,
			Date:        event.Timestamp,
			Description: description,
		}
		if payload, ok := event.Payload.(events.AuthEventPayload); ok {
			trace.IPAddress = payload.IPAddress
			trace.UserAgent = payload.UserAgent
			if payload.Email != "" {
				trace.Description = description + ": " + payload.Email
			}
		}
		if err := a.traces.Create(ctx, trace); err != nil {
			a.logger.Warn("audit trace write failed",
				zap.String("event", string(event.Type)),
				zap.Int64("user_id", event.UserID),
				zap.Error(err))
		}
		return nil
	}
}
