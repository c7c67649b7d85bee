package domain

import (
	"time"
)

// PaymentSchedule tracks a fixed 3-instalment plan splitting a penalty
// amount into equal monthly charges.
type PaymentSchedule struct {
	ID                string         `json:"id" db:"id"`
	CustomerID        string         `json:"customerId" db:"customer_id" validate:"required"`
	PenaltyID         string         `json:"penaltyId" db:"penalty_id" validate:"required"`
	TotalAmount       string         `json:"totalAmount" db:"total_amount" validate:"required"`
	MonthlyAmount     string         `json:"monthlyAmount" db:"monthly_amount" validate:"required"`
	TotalPayments     int            `json:"totalPayments" db:"total_payments"`
	PaymentsCompleted int            `json:"paymentsCompleted" db:"payments_completed"`
	Status            ScheduleStatus `json:"status" db:"status"`
	SubscriptionRef   string         `json:"subscriptionRef,omitempty" db:"subscription_ref"`
	ScheduleRef       string         `json:"scheduleRef,omitempty" db:"schedule_ref"`
	NextPaymentDate   *time.Time     `json:"nextPaymentDate,omitempty" db:"next_payment_date"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// ScheduleStatus represents the state of an instalment plan
type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Payment represents one instalment of a schedule.
type Payment struct {
	ID            string        `json:"id" db:"id"`
	ScheduleID    string        `json:"scheduleId" db:"schedule_id" validate:"required"`
	CustomerID    string        `json:"customerId" db:"customer_id" validate:"required"`
	Amount        string        `json:"amount" db:"amount" validate:"required"`
	PaymentNumber int           `json:"paymentNumber" db:"payment_number" validate:"required,min=1,max=3"`
	Status        PaymentStatus `json:"status" db:"status"`
	IntentRef     string        `json:"intentRef,omitempty" db:"intent_ref"`
	SessionRef    string        `json:"sessionRef,omitempty" db:"session_ref"`
	PaidAt        *time.Time    `json:"paidAt,omitempty" db:"paid_at"`
	DueDate       time.Time     `json:"dueDate" db:"due_date"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// PaymentStatus represents the state of an individual instalment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)
