package camps

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/pagination"
	"github.com/campward/campward/pkg/query"
	"github.com/campward/campward/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	defaults   Defaults
}

// Defaults supplies service-wide grouping limits applied when a camp
// is created without its own.
type Defaults struct {
	MaxGroupSize   int
	MaxGradeSpread int
}

// New creates a camp repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	defaults Defaults,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "camps"),
		pagination: pagination,
		defaults:   defaults,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Camp], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Location")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count camps: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	camps, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCamp)
	if err != nil {
		return nil, fmt.Errorf("query camps: %w", err)
	}

	result := pagination.NewPageResult(camps, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Camp, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCamp)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Camp, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	if cmd.MaxGroupSize == 0 {
		cmd.MaxGroupSize = r.defaults.MaxGroupSize
	}
	if cmd.MaxGradeSpread == 0 {
		cmd.MaxGradeSpread = r.defaults.MaxGradeSpread
	}

	q := `
		INSERT INTO camps(id, name, location, start_date, end_date, registration_cutoff, max_group_size, max_grade_spread)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, location, start_date, end_date, registration_cutoff, max_group_size, max_grade_spread, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Name,
		cmd.Location,
		cmd.StartDate,
		cmd.EndDate,
		cmd.RegistrationCutoff,
		cmd.MaxGroupSize,
		cmd.MaxGradeSpread,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Camp, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCamp)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("camp created", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Camp, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(current, cmd)
	if current.EndDate.Before(current.StartDate) {
		return nil, ErrInvalidDates
	}

	q := `
		UPDATE camps
		SET name = $2, location = $3, start_date = $4, end_date = $5, registration_cutoff = $6,
		    max_group_size = $7, max_grade_spread = $8, updated_at = now()
		WHERE id = $1
		RETURNING id, name, location, start_date, end_date, registration_cutoff, max_group_size, max_grade_spread, created_at, updated_at`

	updateArgs := []any{
		id,
		current.Name,
		current.Location,
		current.StartDate,
		current.EndDate,
		current.RegistrationCutoff,
		current.MaxGroupSize,
		current.MaxGradeSpread,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Camp, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanCamp)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("camp updated", "id", c.ID)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM camps WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("camp deleted", "id", id)
	return nil
}

func validateCreate(cmd CreateCommand) error {
	if cmd.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidCamp)
	}
	if cmd.StartDate.IsZero() || cmd.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates required", ErrInvalidCamp)
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return ErrInvalidDates
	}
	if cmd.MaxGroupSize < 0 || cmd.MaxGradeSpread < 0 {
		return fmt.Errorf("%w: grouping limits cannot be negative", ErrInvalidCamp)
	}
	return nil
}

func applyUpdate(c *Camp, cmd UpdateCommand) {
	if cmd.Name != nil {
		c.Name = *cmd.Name
	}
	if cmd.Location != nil {
		c.Location = *cmd.Location
	}
	if cmd.StartDate != nil {
		c.StartDate = *cmd.StartDate
	}
	if cmd.EndDate != nil {
		c.EndDate = *cmd.EndDate
	}
	if cmd.RegistrationCutoff != nil {
		c.RegistrationCutoff = *cmd.RegistrationCutoff
	}
	if cmd.MaxGroupSize != nil {
		c.MaxGroupSize = *cmd.MaxGroupSize
	}
	if cmd.MaxGradeSpread != nil {
		c.MaxGradeSpread = *cmd.MaxGradeSpread
	}
}
