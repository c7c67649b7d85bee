package domain

import (
	"time"
)

// Customer represents a driver who has started an instalment plan. The
// provider reference fields hold the identifiers the external payment layer
// assigns when it creates a billing customer, subscription and schedule.
type Customer struct {
	ID                  string    `json:"id" db:"id"`
	Email               string    `json:"email" db:"email" validate:"required,email"`
	PCNNumber           string    `json:"pcnNumber" db:"pcn_number" validate:"required"`
	VehicleRegistration string    `json:"vehicleRegistration" db:"vehicle_registration" validate:"required"`
	BillingCustomerRef  string    `json:"billingCustomerRef,omitempty" db:"billing_customer_ref"`
	SubscriptionRef     string    `json:"subscriptionRef,omitempty" db:"subscription_ref"`
	ScheduleRef         string    `json:"scheduleRef,omitempty" db:"schedule_ref"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// CustomerInsert is the writable subset for creating a customer.
type CustomerInsert struct {
	Email               string `json:"email" validate:"required,email"`
	PCNNumber           string `json:"pcnNumber" validate:"required"`
	VehicleRegistration string `json:"vehicleRegistration" validate:"required"`
}
