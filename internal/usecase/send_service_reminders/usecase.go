package send_service_reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
)

// UseCase напоминает клиентам о плановом обслуживании
type UseCase struct {
	customerRepo CustomerRepository
	sender       Sender // nil, если отправка через Twilio выключена
	metrics      Metrics
	timeProvider TimeProvider
	workshopName string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. sender может быть nil: тогда напоминания только логируются
func NewUseCase(
	customerRepo CustomerRepository,
	sender Sender,
	metrics Metrics,
	timeProvider TimeProvider,
	workshopName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		customerRepo: customerRepo,
		sender:       sender,
		metrics:      metrics,
		timeProvider: timeProvider,
		workshopName: workshopName,
		logger:       logger,
	}
}

// Execute находит клиентов, которым пора на обслуживание, и отправляет им напоминание
// Ошибка отправки одному клиенту не прерывает остальные
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	customers, err := uc.customerRepo.ListCustomers(ctx, domain.CustomersFilter{OverdueOnly: true})
	if err != nil {
		uc.logger.Error("SendServiceReminders: failed to list customers: %v", err)
		return nil, fmt.Errorf("%w: failed to list customers: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	result := &Result{}

	for _, c := range customers {
		if !c.IsServiceOverdue(now) {
			continue
		}
		result.Overdue++

		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendServiceReminders: stopped after %d customers: %v", result.Overdue-1, err)
			return result, nil
		}

		text := whatsapp.ReminderText(c, uc.workshopName, now)
		if uc.sender == nil {
			uc.logger.Info("SendServiceReminders: plate=%s phone=%s status=%s", c.PlateNumber, c.Phone, c.ServiceStatus(now))
			uc.metrics.IncReminder(StatusLogged)
			result.Logged++
			continue
		}

		sid, err := uc.sender.SendWhatsApp(ctx, c.Phone, text)
		if err != nil {
			uc.logger.Warn("SendServiceReminders: failed to send to plate=%s: %v", c.PlateNumber, err)
			uc.metrics.IncReminder(StatusFailed)
			result.Failed++
			continue
		}

		uc.logger.Info("SendServiceReminders: sent to plate=%s sid=%s", c.PlateNumber, sid)
		uc.metrics.IncReminder(StatusSent)
		result.Sent++
	}

	uc.logger.Info("SendServiceReminders: overdue=%d sent=%d failed=%d logged=%d",
		result.Overdue, result.Sent, result.Failed, result.Logged)
	return result, nil
}
