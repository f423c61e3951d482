package campers

import (
	"context"
	"database/sql"
	"errors"
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
}

// New creates a roster repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "campers"),
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
) (*pagination.PageResult[Camper], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FullName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count campers: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	campers, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCamper)
	if err != nil {
		return nil, fmt.Errorf("query campers: %w", err)
	}

	result := pagination.NewPageResult(campers, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Camper, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCamper)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Camper, error) {
	if cmd.FullName == "" {
		return nil, fmt.Errorf("%w: full name required", ErrInvalidCamper)
	}
	if cmd.CampID == uuid.Nil {
		return nil, fmt.Errorf("%w: camp id required", ErrInvalidCamper)
	}

	q := `
		INSERT INTO campers(id, camp_id, full_name, date_of_birth, reported_grade, squad_id,
		                    medical_notes, allergies, special_considerations, leadership_potential, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, camp_id, full_name, date_of_birth, reported_grade, squad_id,
		          medical_notes, allergies, special_considerations, leadership_potential,
		          status, registered_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.CampID,
		cmd.FullName,
		cmd.DateOfBirth,
		cmd.ReportedGrade,
		cmd.SquadID,
		cmd.MedicalNotes,
		cmd.Allergies,
		cmd.SpecialConsiderations,
		cmd.LeadershipPotential,
		StatusRegistered,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Camper, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCamper)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("camper registered", "id", c.ID, "camp", c.CampID)
	return &c, nil
}

func (r *repo) Cancel(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM group_assignments WHERE camper_id = $1", id,
		); err != nil {
			return struct{}{}, fmt.Errorf("clear assignments: %w", err)
		}

		err := repository.ExecExpectOne(ctx, tx,
			"UPDATE campers SET status = $2, updated_at = now() WHERE id = $1",
			id, StatusCancelled,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("camper cancelled", "id", id)
	return nil
}

func (r *repo) AddFriend(ctx context.Context, camperID, friendID uuid.UUID) (*FriendRequest, error) {
	if camperID == friendID {
		return nil, ErrSelfFriend
	}

	from, err := r.Find(ctx, camperID)
	if err != nil {
		return nil, err
	}
	to, err := r.Find(ctx, friendID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrFriendNotFound
		}
		return nil, err
	}

	if from.CampID != to.CampID {
		return nil, ErrCrossCampFriend
	}
	if from.Status == StatusCancelled || to.Status == StatusCancelled {
		return nil, ErrCancelled
	}

	q := `
		INSERT INTO friend_requests(id, camp_id, from_camper_id, to_camper_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_camper_id, to_camper_id) DO UPDATE SET requested_at = friend_requests.requested_at
		RETURNING id, camp_id, from_camper_id, to_camper_id, requested_at`

	insertArgs := []any{uuid.New(), from.CampID, camperID, friendID}

	fr, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FriendRequest, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanFriendRequest)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("friend request recorded", "from", camperID, "to", friendID)
	return &fr, nil
}

func (r *repo) RemoveFriend(ctx context.Context, camperID, friendID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"DELETE FROM friend_requests WHERE from_camper_id = $1 AND to_camper_id = $2",
			camperID, friendID,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrFriendNotFound, ErrDuplicate)
	}

	r.logger.Info("friend request removed", "from", camperID, "to", friendID)
	return nil
}
