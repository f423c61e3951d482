package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/pagination"
	"github.com/campward/campward/pkg/query"
	"github.com/campward/campward/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an attendance repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "attendance"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) CheckIn(ctx context.Context, cmd CheckCommand) (*Record, error) {
	day := normalizeDay(cmd.Day)

	record, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		campID, err := camperCamp(ctx, tx, cmd.CamperID)
		if err != nil {
			return Record{}, err
		}

		var exists bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM attendance_records WHERE camper_id = $1 AND day = $2)",
			cmd.CamperID, day,
		).Scan(&exists); err != nil {
			return Record{}, err
		}
		if exists {
			return Record{}, ErrAlreadyCheckedIn
		}

		q := `
			INSERT INTO attendance_records(id, camp_id, camper_id, day, checked_in_at, notes)
			VALUES ($1, $2, $3, $4, now(), $5)
			RETURNING id, camp_id, camper_id, day, checked_in_at, checked_out_at, notes`

		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), campID, cmd.CamperID, day, cmd.Notes,
		}, scanRecord)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("camper checked in", "camper", cmd.CamperID, "day", day.Format(time.DateOnly))
	return &record, nil
}

func (r *repo) CheckOut(ctx context.Context, cmd CheckCommand) (*Record, error) {
	day := normalizeDay(cmd.Day)

	record, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		if _, err := camperCamp(ctx, tx, cmd.CamperID); err != nil {
			return Record{}, err
		}

		q := `
			SELECT id, camp_id, camper_id, day, checked_in_at, checked_out_at, notes
			FROM attendance_records
			WHERE camper_id = $1 AND day = $2
			FOR UPDATE`

		current, err := repository.QueryOne(ctx, tx, q, []any{cmd.CamperID, day}, scanRecord)
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotCheckedIn
		}
		if err != nil {
			return Record{}, err
		}
		if current.CheckedOutAt != nil {
			return Record{}, ErrAlreadyCheckedOut
		}

		update := `
			UPDATE attendance_records
			SET checked_out_at = now(), notes = CASE WHEN $2 = '' THEN notes ELSE $2 END
			WHERE id = $1
			RETURNING id, camp_id, camper_id, day, checked_in_at, checked_out_at, notes`

		return repository.QueryOne(ctx, tx, update, []any{current.ID, cmd.Notes}, scanRecord)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("camper checked out", "camper", cmd.CamperID, "day", day.Format(time.DateOnly))
	return &record, nil
}

// camperCamp resolves the camper's camp and confirms the registration exists.
func camperCamp(ctx context.Context, tx *sql.Tx, camperID uuid.UUID) (uuid.UUID, error) {
	var campID uuid.UUID
	err := tx.QueryRowContext(ctx,
		"SELECT camp_id FROM campers WHERE id = $1 AND status = 'registered'",
		camperID,
	).Scan(&campID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrCamperNotFound
	}
	return campID, err
}

// normalizeDay truncates to a UTC calendar date, defaulting to today.
func normalizeDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
