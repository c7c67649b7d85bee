package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pcnportal/pkg/contracts/domain"
)

// CustomerRepo provides CRUD access to portal customers.
type CustomerRepo struct {
	db *DB
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(db *DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerColumns = `id, email, pcn_number, vehicle_registration,
	coalesce(billing_customer_ref, ''), coalesce(subscription_ref, ''),
	coalesce(schedule_ref, ''), created_at`

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PCNNumber,
		&c.VehicleRegistration,
		&c.BillingCustomerRef,
		&c.SubscriptionRef,
		&c.ScheduleRef,
		&c.CreatedAt,
	)
	return c, err
}

// GetByID fetches a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	sql := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)
	c, err := scanCustomer(r.db.Pool.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("%w: customer %q", ErrNotFound, id)
	}
	return c, err
}

// GetByEmail fetches a customer by email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	sql := fmt.Sprintf(`SELECT %s FROM customers WHERE email = $1`, customerColumns)
	c, err := scanCustomer(r.db.Pool.QueryRow(ctx, sql, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("%w: customer %q", ErrNotFound, email)
	}
	return c, err
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, ins domain.CustomerInsert) (domain.Customer, error) {
	sql := fmt.Sprintf(`INSERT INTO customers (email, pcn_number, vehicle_registration)
		VALUES ($1, $2, $3)
		RETURNING %s`, customerColumns)

	c, err := scanCustomer(r.db.Pool.QueryRow(ctx, sql, ins.Email, ins.PCNNumber, ins.VehicleRegistration))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

// UpdateBillingRefs records the identifiers the payment provider assigned
// for this customer. Empty refs leave the stored value unchanged.
func (r *CustomerRepo) UpdateBillingRefs(ctx context.Context, id, customerRef, subscriptionRef, scheduleRef string) (domain.Customer, error) {
	sql := fmt.Sprintf(`UPDATE customers SET
		billing_customer_ref = coalesce(nullif($2, ''), billing_customer_ref),
		subscription_ref     = coalesce(nullif($3, ''), subscription_ref),
		schedule_ref         = coalesce(nullif($4, ''), schedule_ref)
		WHERE id = $1
		RETURNING %s`, customerColumns)

	c, err := scanCustomer(r.db.Pool.QueryRow(ctx, sql, id, customerRef, subscriptionRef, scheduleRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("%w: customer %q", ErrNotFound, id)
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to update billing refs: %w", err)
	}
	return c, nil
}
