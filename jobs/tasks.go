package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskGenerateMonthlyPayments creates the year's subscription payment
	// records for every billable company.
	TaskGenerateMonthlyPayments = "billing:generate_monthly_payments"
	// CronMonthlyPayments fires at the first moment of January. The
	// generator is not idempotent, so this yearly schedule is the only
	// guard against duplicate payment records.
	CronMonthlyPayments = "0 0 1 1 *"
)

// PaymentGenerator is the billing surface the worker drives.
type PaymentGenerator interface {
	GenerateMonthlyPayments(ctx context.Context) (int, error)
}

// GenerateMonthlyPaymentsPayload is currently empty; the task derives the
// year from the clock. Kept as a struct so the payload can grow.
type GenerateMonthlyPaymentsPayload struct{}

// NewGenerateMonthlyPaymentsTask constructs the Asynq task.
func NewGenerateMonthlyPaymentsTask() (*asynq.Task, error) {
	data, err := json.Marshal(GenerateMonthlyPaymentsPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateMonthlyPayments, data), nil
}

// NewGenerateMonthlyPaymentsHandler processes TaskGenerateMonthlyPayments.
func NewGenerateMonthlyPaymentsHandler(generator PaymentGenerator, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload GenerateMonthlyPaymentsPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		created, err := generator.GenerateMonthlyPayments(ctx)
		if err != nil {
			logger.Error("generate monthly payments", slog.Any("error", err))
			return err
		}
		logger.Info("generated monthly payments", slog.Int("created", created))
		return nil
	}
}
