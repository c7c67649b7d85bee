package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"pcnportal/pkg/contracts/domain"
)

// PenaltyRepo provides CRUD access to persisted penalty records. Ticket
// number is the natural key: bulk ingestion upserts against it, and the
// payment layer flips status to paid through it.
type PenaltyRepo struct {
	db *DB
}

// NewPenaltyRepo creates a penalty repository.
func NewPenaltyRepo(db *DB) *PenaltyRepo {
	return &PenaltyRepo{db: db}
}

const penaltyColumns = `id, ticket_no, vrm, coalesce(vehicle_make, ''), penalty_amount::text,
	coalesce(contravention_date, ''), coalesce(site, ''), coalesce(reason_for_issue, ''),
	coalesce(badge_id, ''), status, created_at, updated_at`

func scanPenalty(row pgx.Row) (domain.Penalty, error) {
	var p domain.Penalty
	err := row.Scan(
		&p.ID,
		&p.TicketNo,
		&p.VRM,
		&p.VehicleMake,
		&p.PenaltyAmount,
		&p.ContraventionDate,
		&p.Site,
		&p.ReasonForIssue,
		&p.BadgeID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// GetByID fetches a penalty by its generated ID.
func (r *PenaltyRepo) GetByID(ctx context.Context, id string) (domain.Penalty, error) {
	sql := fmt.Sprintf(`SELECT %s FROM penalties WHERE id = $1`, penaltyColumns)
	p, err := scanPenalty(r.db.Pool.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Penalty{}, fmt.Errorf("%w: penalty %q", ErrNotFound, id)
	}
	return p, err
}

// GetByTicketNo fetches a penalty by its ticket number.
func (r *PenaltyRepo) GetByTicketNo(ctx context.Context, ticketNo string) (domain.Penalty, error) {
	sql := fmt.Sprintf(`SELECT %s FROM penalties WHERE ticket_no = $1`, penaltyColumns)
	p, err := scanPenalty(r.db.Pool.QueryRow(ctx, sql, ticketNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Penalty{}, fmt.Errorf("%w: ticket %q", ErrNotFound, ticketNo)
	}
	return p, err
}

// Search filters persisted penalties. Unlike the spreadsheet lookup path,
// this path is deliberately case-insensitive substring matching; the two
// behaviors diverge in the original system and both are kept. With no
// filters at all it returns nothing.
func (r *PenaltyRepo) Search(ctx context.Context, ticketNo, vrm string) ([]domain.Penalty, error) {
	if ticketNo == "" && vrm == "" {
		return []domain.Penalty{}, nil
	}

	sql := fmt.Sprintf(`SELECT %s FROM penalties
		WHERE ($1 = '' OR ticket_no ILIKE '%%' || $1 || '%%')
		  AND ($2 = '' OR vrm ILIKE '%%' || $2 || '%%')
		ORDER BY created_at`, penaltyColumns)

	rows, err := r.db.Pool.Query(ctx, sql, ticketNo, vrm)
	if err != nil {
		return nil, fmt.Errorf("failed to search penalties: %w", err)
	}
	defer rows.Close()

	out := []domain.Penalty{}
	for rows.Next() {
		p, err := scanPenalty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a new penalty record.
func (r *PenaltyRepo) Create(ctx context.Context, ins domain.PenaltyInsert) (domain.Penalty, error) {
	if ins.Status == "" {
		ins.Status = domain.PenaltyStatusActive
	}
	sql := fmt.Sprintf(`INSERT INTO penalties
		(ticket_no, vrm, vehicle_make, penalty_amount, contravention_date, site, reason_for_issue, badge_id, status)
		VALUES ($1, $2, nullif($3, ''), $4::numeric, nullif($5, ''), nullif($6, ''), nullif($7, ''), nullif($8, ''), $9)
		RETURNING %s`, penaltyColumns)

	p, err := scanPenalty(r.db.Pool.QueryRow(ctx, sql,
		ins.TicketNo, ins.VRM, ins.VehicleMake, ins.PenaltyAmount,
		ins.ContraventionDate, ins.Site, ins.ReasonForIssue, ins.BadgeID, ins.Status))
	if err != nil {
		return domain.Penalty{}, fmt.Errorf("failed to create penalty: %w", err)
	}
	return p, nil
}

// Update replaces the writable fields of an existing penalty.
func (r *PenaltyRepo) Update(ctx context.Context, id string, ins domain.PenaltyInsert) (domain.Penalty, error) {
	if ins.Status == "" {
		ins.Status = domain.PenaltyStatusActive
	}
	sql := fmt.Sprintf(`UPDATE penalties SET
		ticket_no = $2, vrm = $3, vehicle_make = nullif($4, ''),
		penalty_amount = $5::numeric, contravention_date = nullif($6, ''),
		site = nullif($7, ''), reason_for_issue = nullif($8, ''),
		badge_id = nullif($9, ''), status = $10, updated_at = now()
		WHERE id = $1
		RETURNING %s`, penaltyColumns)

	p, err := scanPenalty(r.db.Pool.QueryRow(ctx, sql, id,
		ins.TicketNo, ins.VRM, ins.VehicleMake, ins.PenaltyAmount,
		ins.ContraventionDate, ins.Site, ins.ReasonForIssue, ins.BadgeID, ins.Status))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Penalty{}, fmt.Errorf("%w: penalty %q", ErrNotFound, id)
	}
	if err != nil {
		return domain.Penalty{}, fmt.Errorf("failed to update penalty: %w", err)
	}
	return p, nil
}

// MarkPaid sets a penalty's status to paid. This is the entry point for the
// external payment-completion signal.
func (r *PenaltyRepo) MarkPaid(ctx context.Context, ticketNo string) (domain.Penalty, error) {
	sql := fmt.Sprintf(`UPDATE penalties SET status = 'paid', updated_at = now()
		WHERE ticket_no = $1
		RETURNING %s`, penaltyColumns)

	p, err := scanPenalty(r.db.Pool.QueryRow(ctx, sql, ticketNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Penalty{}, fmt.Errorf("%w: ticket %q", ErrNotFound, ticketNo)
	}
	if err != nil {
		return domain.Penalty{}, fmt.Errorf("failed to mark penalty paid: %w", err)
	}

	r.db.logger.InfoContext(ctx, "penalty marked paid", slog.String("ticket_no", ticketNo))
	return p, nil
}
