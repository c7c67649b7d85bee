package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcnportal/internal/shared/testutil"
	"pcnportal/pkg/contracts/domain"
)

// connectTestDB opens a pool against the database named by
// PCN_TEST_DATABASE_URL and applies the schema. Tests that need a live
// database skip when the variable is unset so the suite stays runnable
// everywhere.
func connectTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("PCN_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PCN_TEST_DATABASE_URL not set; skipping database integration test")
	}

	ctx := context.Background()
	logger, _ := testutil.NewTestLogger(t)

	db, err := Connect(ctx, dsn, 4, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func uniqueTicket() string {
	return "PCN-" + uuid.NewString()[:8]
}

func TestPenaltyRepo_CreateGetUpdate(t *testing.T) {
	db := connectTestDB(t)
	repo := NewPenaltyRepo(db)
	ctx := context.Background()

	ticket := uniqueTicket()
	created, err := repo.Create(ctx, domain.PenaltyInsert{
		TicketNo:          ticket,
		VRM:               "AB12CDE",
		VehicleMake:       "Ford",
		PenaltyAmount:     "60.00",
		ContraventionDate: "15/01/2024 09:30:00",
		Site:              "High Street Car Park",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.PenaltyStatusActive, created.Status)

	got, err := repo.GetByTicketNo(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "60.00", got.PenaltyAmount)

	updated, err := repo.Update(ctx, created.ID, domain.PenaltyInsert{
		TicketNo:      ticket,
		VRM:           "AB12CDE",
		PenaltyAmount: "35.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "35.00", updated.PenaltyAmount)
	assert.Empty(t, updated.VehicleMake)
}

func TestPenaltyRepo_GetMissing(t *testing.T) {
	db := connectTestDB(t)
	repo := NewPenaltyRepo(db)

	_, err := repo.GetByTicketNo(context.Background(), "PCN-DOES-NOT-EXIST")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Update(context.Background(), uuid.NewString(), domain.PenaltyInsert{
		TicketNo: "PCN-X", VRM: "X", PenaltyAmount: "1.00",
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPenaltyRepo_SearchSubstring(t *testing.T) {
	db := connectTestDB(t)
	repo := NewPenaltyRepo(db)
	ctx := context.Background()

	vrm := "ZQ" + uuid.NewString()[:6]
	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, domain.PenaltyInsert{
			TicketNo:      uniqueTicket(),
			VRM:           fmt.Sprintf("%s%d", vrm, i),
			PenaltyAmount: "60.00",
		})
		require.NoError(t, err)
	}

	results, err := repo.Search(ctx, "", vrm)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// The persisted path matches case-insensitive substrings.
	results, err = repo.Search(ctx, "", strings.ToLower(vrm))
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Both filters empty returns nothing, not everything.
	results, err = repo.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPenaltyRepo_MarkPaid(t *testing.T) {
	db := connectTestDB(t)
	repo := NewPenaltyRepo(db)
	ctx := context.Background()

	ticket := uniqueTicket()
	_, err := repo.Create(ctx, domain.PenaltyInsert{
		TicketNo: ticket, VRM: "AB12CDE", PenaltyAmount: "60.00",
	})
	require.NoError(t, err)

	paid, err := repo.MarkPaid(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, domain.PenaltyStatusPaid, paid.Status)

	_, err = repo.MarkPaid(ctx, "PCN-DOES-NOT-EXIST")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCustomerRepo_BillingRefs(t *testing.T) {
	db := connectTestDB(t)
	repo := NewCustomerRepo(db)
	ctx := context.Background()

	email := uuid.NewString() + "@example.test"
	created, err := repo.Create(ctx, domain.CustomerInsert{
		Email:               email,
		PCNNumber:           uniqueTicket(),
		VehicleRegistration: "AB12CDE",
	})
	require.NoError(t, err)
	assert.Empty(t, created.BillingCustomerRef)

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	withRefs, err := repo.UpdateBillingRefs(ctx, created.ID, "cus_123", "sub_456", "sched_789")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", withRefs.BillingCustomerRef)
	assert.Equal(t, "sub_456", withRefs.SubscriptionRef)
	assert.Equal(t, "sched_789", withRefs.ScheduleRef)

	// Empty refs leave the stored values untouched.
	unchanged, err := repo.UpdateBillingRefs(ctx, created.ID, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", unchanged.BillingCustomerRef)
}

func TestSchedulesAndPayments(t *testing.T) {
	db := connectTestDB(t)
	ctx := context.Background()

	customer, err := NewCustomerRepo(db).Create(ctx, domain.CustomerInsert{
		Email:               uuid.NewString() + "@example.test",
		PCNNumber:           uniqueTicket(),
		VehicleRegistration: "AB12CDE",
	})
	require.NoError(t, err)

	penalty, err := NewPenaltyRepo(db).Create(ctx, domain.PenaltyInsert{
		TicketNo: uniqueTicket(), VRM: "AB12CDE", PenaltyAmount: "60.00",
	})
	require.NoError(t, err)

	schedules := NewScheduleRepo(db)
	next := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Second)
	schedule, err := schedules.Create(ctx, domain.PaymentSchedule{
		CustomerID:      customer.ID,
		PenaltyID:       penalty.ID,
		TotalAmount:     "60.00",
		MonthlyAmount:   "20.00",
		NextPaymentDate: &next,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, schedule.TotalPayments)
	assert.Equal(t, domain.ScheduleStatusActive, schedule.Status)

	payments := NewPaymentRepo(db)
	for n := 1; n <= 3; n++ {
		_, err := payments.Create(ctx, domain.Payment{
			ScheduleID:    schedule.ID,
			CustomerID:    customer.ID,
			Amount:        "20.00",
			PaymentNumber: n,
			DueDate:       time.Now().UTC().AddDate(0, n, 0),
		})
		require.NoError(t, err)
	}

	listed, err := payments.ListBySchedule(ctx, schedule.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, 1, listed[0].PaymentNumber)
	assert.Equal(t, domain.PaymentStatusPending, listed[0].Status)

	completed, err := payments.MarkCompleted(ctx, listed[0].ID, "pi_abc", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, completed.Status)
	require.NotNil(t, completed.PaidAt)

	// Each settled instalment bumps the counter; the third flips the plan.
	for i := 0; i < 2; i++ {
		schedule, err = schedules.RecordInstalment(ctx, schedule.ID, &next)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, schedule.PaymentsCompleted)
	assert.Equal(t, domain.ScheduleStatusActive, schedule.Status)

	schedule, err = schedules.RecordInstalment(ctx, schedule.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, schedule.PaymentsCompleted)
	assert.Equal(t, domain.ScheduleStatusCompleted, schedule.Status)

	byCustomer, err := schedules.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, schedule.ID, byCustomer[0].ID)
}
