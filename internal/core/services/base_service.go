package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
	"github.com/shopspring/decimal"
)

// maxMoney is the largest amount a NUMERIC(18,2) column holds.
var maxMoney = decimal.RequireFromString("9999999999999999.99")

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock used for timestamps and numbering periods.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{now: time.Now}
	for _, opt := range options {
		opt(&base)
	}
	return base
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Authorize evaluates the capability table and converts a refusal into a
// Forbidden error.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, action domain.Action, c *domain.Case) error {
	if err := domain.Authorize(actor, action, c); err != nil {
		if errors.Is(err, domain.ErrNotPermitted) {
			s.LogDebug(ctx, "Authorization denied",
				slog.String("user_id", actor.UserID),
				slog.String("action", string(action)))
			return apperrors.NewForbiddenError(fmt.Sprintf("not permitted to perform %s", action))
		}
		return err
	}
	return nil
}

// requireVisible returns Forbidden when the actor may not see the case.
func (s *BaseService) requireVisible(c *domain.Case, actor domain.Actor) error {
	if !c.IsVisibleTo(actor) {
		return apperrors.NewForbiddenError("case is not visible to the caller")
	}
	return nil
}

// validateAmount checks that amount fits the money column. Zero is only
// accepted when allowZero is set.
func validateAmount(field string, amount decimal.Decimal, allowZero bool) error {
	switch {
	case amount.IsNegative():
		return apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", field))
	case amount.IsZero() && !allowZero:
		return apperrors.NewValidationError(fmt.Sprintf("%s must be greater than zero", field))
	case !amount.Equal(amount.Round(domain.MoneyScale)):
		return apperrors.NewValidationError(fmt.Sprintf("%s must have at most %d decimal places", field, domain.MoneyScale))
	case amount.GreaterThan(maxMoney):
		return apperrors.NewValidationError(fmt.Sprintf("%s exceeds the maximum of %s", field, maxMoney.StringFixed(domain.MoneyScale)))
	}
	return nil
}

// transitionConflict builds the error returned when a case is not in a
// state that allows event.
func transitionConflict(c *domain.Case, event domain.CaseEvent) error {
	expected := domain.ExpectedStatuses(event)
	names := make([]string, len(expected))
	for i, st := range expected {
		names[i] = string(st)
	}
	return apperrors.NewConflictError(apperrors.CodeInvalidTransition,
		fmt.Sprintf("cannot %s a case in status %s", event, c.Status)).
		WithDetails(map[string]any{
			"caseId":           c.CaseID,
			"currentStatus":    string(c.Status),
			"expectedStatuses": names,
		})
}
