package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"pcnportal/pkg/contracts/domain"
)

// ScheduleRepo provides CRUD access to instalment plans.
type ScheduleRepo struct {
	db *DB
}

// NewScheduleRepo creates a schedule repository.
func NewScheduleRepo(db *DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleColumns = `id, customer_id, penalty_id, total_amount::text, monthly_amount::text,
	total_payments, payments_completed, status, coalesce(subscription_ref, ''),
	coalesce(schedule_ref, ''), next_payment_date, created_at, updated_at`

func scanSchedule(row pgx.Row) (domain.PaymentSchedule, error) {
	var s domain.PaymentSchedule
	err := row.Scan(
		&s.ID,
		&s.CustomerID,
		&s.PenaltyID,
		&s.TotalAmount,
		&s.MonthlyAmount,
		&s.TotalPayments,
		&s.PaymentsCompleted,
		&s.Status,
		&s.SubscriptionRef,
		&s.ScheduleRef,
		&s.NextPaymentDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// GetByID fetches a schedule by ID.
func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (domain.PaymentSchedule, error) {
	sql := fmt.Sprintf(`SELECT %s FROM payment_schedules WHERE id = $1`, scheduleColumns)
	s, err := scanSchedule(r.db.Pool.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PaymentSchedule{}, fmt.Errorf("%w: schedule %q", ErrNotFound, id)
	}
	return s, err
}

// ListByCustomer returns all schedules belonging to a customer.
func (r *ScheduleRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.PaymentSchedule, error) {
	sql := fmt.Sprintf(`SELECT %s FROM payment_schedules WHERE customer_id = $1 ORDER BY created_at`, scheduleColumns)
	rows, err := r.db.Pool.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	out := []domain.PaymentSchedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a new 3-instalment plan.
func (r *ScheduleRepo) Create(ctx context.Context, s domain.PaymentSchedule) (domain.PaymentSchedule, error) {
	if s.TotalPayments == 0 {
		s.TotalPayments = 3
	}
	if s.Status == "" {
		s.Status = domain.ScheduleStatusActive
	}
	sql := fmt.Sprintf(`INSERT INTO payment_schedules
		(customer_id, penalty_id, total_amount, monthly_amount, total_payments,
		 payments_completed, status, subscription_ref, schedule_ref, next_payment_date)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7, nullif($8, ''), nullif($9, ''), $10)
		RETURNING %s`, scheduleColumns)

	out, err := scanSchedule(r.db.Pool.QueryRow(ctx, sql,
		s.CustomerID, s.PenaltyID, s.TotalAmount, s.MonthlyAmount, s.TotalPayments,
		s.PaymentsCompleted, s.Status, s.SubscriptionRef, s.ScheduleRef, s.NextPaymentDate))
	if err != nil {
		return domain.PaymentSchedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return out, nil
}

// RecordInstalment increments the completed count and advances the next
// payment date; a completed plan flips status.
func (r *ScheduleRepo) RecordInstalment(ctx context.Context, id string, next *time.Time) (domain.PaymentSchedule, error) {
	sql := fmt.Sprintf(`UPDATE payment_schedules SET
		payments_completed = payments_completed + 1,
		next_payment_date = $2,
		status = CASE WHEN payments_completed + 1 >= total_payments THEN 'completed' ELSE status END,
		updated_at = now()
		WHERE id = $1
		RETURNING %s`, scheduleColumns)

	s, err := scanSchedule(r.db.Pool.QueryRow(ctx, sql, id, next))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PaymentSchedule{}, fmt.Errorf("%w: schedule %q", ErrNotFound, id)
	}
	if err != nil {
		return domain.PaymentSchedule{}, fmt.Errorf("failed to record instalment: %w", err)
	}
	return s, nil
}

// PaymentRepo provides CRUD access to individual instalments.
type PaymentRepo struct {
	db *DB
}

// NewPaymentRepo creates a payment repository.
func NewPaymentRepo(db *DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `id, schedule_id, customer_id, amount::text, payment_number, status,
	coalesce(intent_ref, ''), coalesce(session_ref, ''), paid_at, due_date, created_at`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.ScheduleID,
		&p.CustomerID,
		&p.Amount,
		&p.PaymentNumber,
		&p.Status,
		&p.IntentRef,
		&p.SessionRef,
		&p.PaidAt,
		&p.DueDate,
		&p.CreatedAt,
	)
	return p, err
}

// ListBySchedule returns the instalments of a plan in payment order.
func (r *PaymentRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]domain.Payment, error) {
	sql := fmt.Sprintf(`SELECT %s FROM payments WHERE schedule_id = $1 ORDER BY payment_number`, paymentColumns)
	rows, err := r.db.Pool.Query(ctx, sql, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	out := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a new instalment.
func (r *PaymentRepo) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	if p.Status == "" {
		p.Status = domain.PaymentStatusPending
	}
	sql := fmt.Sprintf(`INSERT INTO payments
		(schedule_id, customer_id, amount, payment_number, status, intent_ref, session_ref, paid_at, due_date)
		VALUES ($1, $2, $3::numeric, $4, $5, nullif($6, ''), nullif($7, ''), $8, $9)
		RETURNING %s`, paymentColumns)

	out, err := scanPayment(r.db.Pool.QueryRow(ctx, sql,
		p.ScheduleID, p.CustomerID, p.Amount, p.PaymentNumber, p.Status,
		p.IntentRef, p.SessionRef, p.PaidAt, p.DueDate))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return out, nil
}

// MarkCompleted records a settled instalment.
func (r *PaymentRepo) MarkCompleted(ctx context.Context, id, intentRef string, paidAt time.Time) (domain.Payment, error) {
	sql := fmt.Sprintf(`UPDATE payments SET
		status = 'completed', intent_ref = coalesce(nullif($2, ''), intent_ref), paid_at = $3
		WHERE id = $1
		RETURNING %s`, paymentColumns)

	p, err := scanPayment(r.db.Pool.QueryRow(ctx, sql, id, intentRef, paidAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, fmt.Errorf("%w: payment %q", ErrNotFound, id)
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("failed to mark payment completed: %w", err)
	}
	return p, nil
}
