package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
	"github.com/campward/campward/pkg/repository"
)

type repo struct {
	db            *sql.DB
	logger        *slog.Logger
	locker        *Locker
	requireMutual bool
}

// New creates a grouping session repository implementing the System
// interface. requireMutual is the service-wide friend binding policy applied
// when a session is first created for a camp.
func New(db *sql.DB, logger *slog.Logger, locker *Locker, requireMutual bool) System {
	return &repo{
		db:            db,
		logger:        logger.With("system", "sessions"),
		locker:        locker,
		requireMutual: requireMutual,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// campRow carries the camp fields the grouping engine needs.
type campRow struct {
	id                 uuid.UUID
	startDate          time.Time
	registrationCutoff time.Time
	maxGroupSize       int
	maxGradeSpread     int
}

func (r *repo) State(ctx context.Context, campID uuid.UUID) (*State, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*State, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, false)
		if err != nil {
			return nil, err
		}

		return r.buildState(ctx, tx, camp, session)
	})
}

func (r *repo) AutoGroup(ctx context.Context, campID uuid.UUID, cmd AutoGroupCommand) (*AutoGroupResult, error) {
	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*AutoGroupResult, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}
		if cmd.Version > 0 && cmd.Version != session.Version {
			return nil, ErrVersionConflict
		}

		next, err := engine.Transition(session.Status, engine.EventRun)
		if err != nil {
			return nil, err
		}

		campers, friendGroups, err := r.standardize(ctx, tx, camp, session.Config)
		if err != nil {
			return nil, err
		}

		cfg := session.Config
		if cmd.NumGroups > 0 {
			cfg.NumGroups = cmd.NumGroups
		} else {
			cfg.NumGroups = engine.DefaultNumGroups(len(campers), cfg.MaxGroupSize)
		}

		existing, err := loadGroups(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}
		groups := PlanGroups(existing, cfg.NumGroups)

		solved, err := engine.Solve(campers, friendGroups, groups, cfg)
		if err != nil {
			return nil, err
		}

		prior, err := loadViolations(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}
		violations := engine.CarryForward(solved.Violations, prior)

		if err := syncGroups(ctx, tx, session.ID, solved.Groups); err != nil {
			return nil, err
		}
		if err := replaceViolations(ctx, tx, session.ID, violations); err != nil {
			return nil, err
		}

		session.Status = next
		session.Config = cfg
		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		return &AutoGroupResult{
			Session:  *session,
			Groups:   solved.Groups,
			Warnings: violations,
			Stats:    solved.Stats,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("auto-grouping complete",
		"camp", campID,
		"groups", result.Stats.GroupCount,
		"campers", result.Stats.CamperCount,
		"split_friend_groups", result.Stats.SplitFriendGroups,
	)
	return result, nil
}

func (r *repo) ValidateMove(ctx context.Context, campID uuid.UUID, move engine.Move) (*engine.MoveValidation, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*engine.MoveValidation, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, false)
		if err != nil {
			return nil, err
		}

		campers, friendGroups, err := r.standardize(ctx, tx, camp, session.Config)
		if err != nil {
			return nil, err
		}

		groups, err := loadGroups(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}

		return engine.ValidateMove(move, groups, engine.NewRoster(campers), friendGroups, session.Config)
	})
}

func (r *repo) CommitMoves(ctx context.Context, campID uuid.UUID, cmd MoveCommand) (*State, error) {
	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*State, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}
		if cmd.Version > 0 && cmd.Version != session.Version {
			return nil, ErrVersionConflict
		}

		next, err := engine.Transition(session.Status, engine.EventMove)
		if err != nil {
			return nil, err
		}

		campers, friendGroups, err := r.standardize(ctx, tx, camp, session.Config)
		if err != nil {
			return nil, err
		}
		roster := engine.NewRoster(campers)

		for _, m := range cmd.Moves {
			if _, ok := roster[m.CamperID]; !ok {
				return nil, engine.ErrCamperNotFound
			}
		}

		groups, err := loadGroups(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}

		moved, err := engine.ApplyMoves(groups, cmd.Moves)
		if err != nil {
			return nil, err
		}

		prior, err := loadViolations(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}
		violations := engine.CarryForward(
			engine.Evaluate(moved, roster, friendGroups, session.Config),
			prior,
		)
		if cmd.OverrideNote != "" {
			movedIDs := make([]uuid.UUID, len(cmd.Moves))
			for i, m := range cmd.Moves {
				movedIDs[i] = m.CamperID
			}
			violations = engine.AcknowledgeFor(violations, movedIDs, cmd.OverrideNote, time.Now().UTC())
		}

		if err := replaceAssignments(ctx, tx, session.ID, moved); err != nil {
			return nil, err
		}
		if err := replaceViolations(ctx, tx, session.ID, violations); err != nil {
			return nil, err
		}

		session.Status = next
		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		return assembleState(session, campers, friendGroups, moved, violations), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("moves committed", "camp", campID, "moves", len(cmd.Moves), "version", state.Session.Version)
	return state, nil
}

func (r *repo) Resolve(ctx context.Context, campID, violationID uuid.UUID, cmd ResolveCommand) (*engine.Violation, error) {
	if cmd.Note == "" {
		return nil, engine.ErrNoteRequired
	}

	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	violation, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*engine.Violation, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}

		if _, err := engine.Transition(session.Status, engine.EventResolve); err != nil {
			return nil, err
		}

		err = repository.ExecExpectOne(ctx, tx, `
			UPDATE violations
			SET resolved = TRUE, resolution_note = $3, resolved_at = now()
			WHERE id = $1 AND session_id = $2`,
			violationID, session.ID, cmd.Note,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrViolationNotFound
			}
			return nil, err
		}

		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		return loadViolation(ctx, tx, session.ID, violationID)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("violation resolved", "camp", campID, "violation", violationID)
	return violation, nil
}

func (r *repo) Finalize(ctx context.Context, campID uuid.UUID, cmd FinalizeCommand) (*Session, error) {
	var event engine.Event
	switch cmd.Action {
	case ActionFinalize:
		event = engine.EventFinalize
	case ActionUnfinalize:
		event = engine.EventUnlock
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, cmd.Action)
	}

	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Session, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}

		next, err := engine.Transition(session.Status, event)
		if err != nil {
			return nil, err
		}

		if event == engine.EventFinalize {
			violations, err := loadViolations(ctx, tx, session.ID)
			if err != nil {
				return nil, err
			}
			if hard := engine.UnresolvedHard(violations); len(hard) > 0 {
				blocked := &engine.FinalizeBlockedError{}
				for _, v := range hard {
					blocked.ViolationIDs = append(blocked.ViolationIDs, v.ID)
				}
				return nil, blocked
			}
		}

		session.Status = next
		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		return session, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("finalize action applied", "camp", campID, "action", cmd.Action, "status", session.Status)
	return session, nil
}

func (r *repo) CreateGroup(ctx context.Context, campID uuid.UUID, cmd GroupCommand) (*engine.Group, error) {
	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*engine.Group, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}
		if session.Status == engine.StatusFinalized {
			return nil, engine.ErrInvalidTransition
		}

		var number int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(number), 0) + 1 FROM camp_groups WHERE session_id = $1",
			session.ID,
		).Scan(&number); err != nil {
			return nil, err
		}

		g := engine.Group{
			ID:     uuid.New(),
			Number: number,
			Name:   cmd.Name,
			Color:  cmd.Color,
		}
		if g.Name == "" {
			g.Name = fmt.Sprintf("Group %d", number)
		}
		if g.Color == "" {
			g.Color = PaletteColor(number - 1)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO camp_groups(id, session_id, number, name, color) VALUES ($1, $2, $3, $4, $5)",
			g.ID, session.ID, g.Number, g.Name, g.Color,
		); err != nil {
			return nil, err
		}

		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		return &g, nil
	})
}

func (r *repo) UpdateGroup(ctx context.Context, campID, groupID uuid.UUID, cmd GroupCommand) (*engine.Group, error) {
	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return nil, err
	}
	defer release()

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*engine.Group, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return nil, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return nil, err
		}
		if session.Status == engine.StatusFinalized {
			return nil, engine.ErrInvalidTransition
		}
		if cmd.Name == "" && cmd.Color == "" {
			return nil, fmt.Errorf("%w: nothing to update", ErrInvalidGroup)
		}

		err = repository.ExecExpectOne(ctx, tx, `
			UPDATE camp_groups
			SET name = COALESCE(NULLIF($3, ''), name), color = COALESCE(NULLIF($4, ''), color)
			WHERE id = $1 AND session_id = $2`,
			groupID, session.ID, cmd.Name, cmd.Color,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, engine.ErrGroupNotFound
			}
			return nil, err
		}

		if err := r.updateSession(ctx, tx, session); err != nil {
			return nil, err
		}

		groups, err := loadGroups(ctx, tx, session.ID)
		if err != nil {
			return nil, err
		}
		for i := range groups {
			if groups[i].ID == groupID {
				return &groups[i], nil
			}
		}
		return nil, engine.ErrGroupNotFound
	})
}

func (r *repo) DeleteGroup(ctx context.Context, campID, groupID uuid.UUID) error {
	release, err := r.locker.Acquire(ctx, campID)
	if err != nil {
		return err
	}
	defer release()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		camp, err := loadCamp(ctx, tx, campID)
		if err != nil {
			return struct{}{}, err
		}

		session, err := r.ensureSession(ctx, tx, camp, true)
		if err != nil {
			return struct{}{}, err
		}
		if session.Status == engine.StatusFinalized {
			return struct{}{}, engine.ErrInvalidTransition
		}

		// Members fall back to ungrouped; assignments go first so the
		// group row delete cannot orphan them.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM group_assignments WHERE session_id = $1 AND group_id = $2",
			session.ID, groupID,
		); err != nil {
			return struct{}{}, err
		}

		err = repository.ExecExpectOne(ctx, tx,
			"DELETE FROM camp_groups WHERE id = $1 AND session_id = $2",
			groupID, session.ID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return struct{}{}, engine.ErrGroupNotFound
			}
			return struct{}{}, err
		}

		campers, friendGroups, err := r.standardize(ctx, tx, camp, session.Config)
		if err != nil {
			return struct{}{}, err
		}

		groups, err := loadGroups(ctx, tx, session.ID)
		if err != nil {
			return struct{}{}, err
		}

		prior, err := loadViolations(ctx, tx, session.ID)
		if err != nil {
			return struct{}{}, err
		}
		violations := engine.CarryForward(
			engine.Evaluate(groups, engine.NewRoster(campers), friendGroups, session.Config),
			prior,
		)
		if err := replaceViolations(ctx, tx, session.ID, violations); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, r.updateSession(ctx, tx, session)
	})
	if err != nil {
		return err
	}

	r.logger.Info("group deleted", "camp", campID, "group", groupID)
	return nil
}

// standardize loads the registered roster and friend requests for the camp
// and runs them through the engine.
func (r *repo) standardize(
	ctx context.Context,
	tx *sql.Tx,
	camp *campRow,
	cfg engine.Config,
) ([]engine.Camper, []engine.FriendGroup, error) {
	raw, err := loadRawRoster(ctx, tx, camp.id)
	if err != nil {
		return nil, nil, err
	}

	requests, err := loadFriendRequests(ctx, tx, camp.id)
	if err != nil {
		return nil, nil, err
	}

	campers, friendGroups := engine.Standardize(raw, requests, cfg, camp.registrationCutoff, camp.startDate)
	return campers, friendGroups, nil
}

func (r *repo) buildState(ctx context.Context, tx *sql.Tx, camp *campRow, session *Session) (*State, error) {
	campers, friendGroups, err := r.standardize(ctx, tx, camp, session.Config)
	if err != nil {
		return nil, err
	}

	groups, err := loadGroups(ctx, tx, session.ID)
	if err != nil {
		return nil, err
	}

	violations, err := loadViolations(ctx, tx, session.ID)
	if err != nil {
		return nil, err
	}

	return assembleState(session, campers, friendGroups, groups, violations), nil
}

func assembleState(
	session *Session,
	campers []engine.Camper,
	friendGroups []engine.FriendGroup,
	groups []engine.Group,
	violations []engine.Violation,
) *State {
	roster := engine.NewRoster(campers)

	assigned := make(map[uuid.UUID]bool)
	for _, g := range groups {
		for _, id := range g.CamperIDs {
			assigned[id] = true
		}
	}

	ungrouped := make([]uuid.UUID, 0)
	for _, c := range campers {
		if !assigned[c.AthleteID] {
			ungrouped = append(ungrouped, c.AthleteID)
		}
	}

	return &State{
		Session:      *session,
		Campers:      campers,
		FriendGroups: friendGroups,
		Groups:       groups,
		GroupStats:   engine.BuildStats(groups, roster, friendGroups, session.Config),
		Ungrouped:    ungrouped,
		Violations:   violations,
	}
}

// ensureSession loads the camp's session row, creating a pending one on
// first use. forUpdate locks the row for the duration of the transaction so
// concurrent mutations on the same camp serialize even across processes.
func (r *repo) ensureSession(ctx context.Context, tx *sql.Tx, camp *campRow, forUpdate bool) (*Session, error) {
	q := `
		SELECT id, camp_id, status, max_group_size, max_grade_spread, num_groups,
		       require_mutual_friends, version, created_at, updated_at
		FROM grouping_sessions
		WHERE camp_id = $1`
	if forUpdate {
		q += " FOR UPDATE"
	}

	session, err := repository.QueryOne(ctx, tx, q, []any{camp.id}, scanSession)
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	insert := `
		INSERT INTO grouping_sessions(id, camp_id, status, max_group_size, max_grade_spread,
		                              num_groups, require_mutual_friends, version)
		VALUES ($1, $2, $3, $4, $5, 0, $6, 1)
		RETURNING id, camp_id, status, max_group_size, max_grade_spread, num_groups,
		          require_mutual_friends, version, created_at, updated_at`

	session, err = repository.QueryOne(ctx, tx, insert, []any{
		uuid.New(), camp.id, string(engine.StatusPending),
		camp.maxGroupSize, camp.maxGradeSpread, r.requireMutual,
	}, scanSession)
	if err != nil {
		return nil, err
	}

	r.logger.Info("grouping session created", "camp", camp.id, "session", session.ID)
	return &session, nil
}

// updateSession persists status and config and bumps the version counter.
func (r *repo) updateSession(ctx context.Context, tx *sql.Tx, s *Session) error {
	row := tx.QueryRowContext(ctx, `
		UPDATE grouping_sessions
		SET status = $2, max_group_size = $3, max_grade_spread = $4, num_groups = $5,
		    require_mutual_friends = $6, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version, updated_at`,
		s.ID, string(s.Status), s.Config.MaxGroupSize, s.Config.MaxGradeSpread,
		s.Config.NumGroups, s.Config.RequireMutualFriends,
	)
	return row.Scan(&s.Version, &s.UpdatedAt)
}

func loadCamp(ctx context.Context, tx *sql.Tx, campID uuid.UUID) (*campRow, error) {
	var c campRow
	err := tx.QueryRowContext(ctx, `
		SELECT id, start_date, registration_cutoff, max_group_size, max_grade_spread
		FROM camps
		WHERE id = $1`,
		campID,
	).Scan(&c.id, &c.startDate, &c.registrationCutoff, &c.maxGroupSize, &c.maxGradeSpread)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanSession(s repository.Scanner) (Session, error) {
	var (
		session Session
		status  string
	)
	err := s.Scan(
		&session.ID,
		&session.CampID,
		&status,
		&session.Config.MaxGroupSize,
		&session.Config.MaxGradeSpread,
		&session.Config.NumGroups,
		&session.Config.RequireMutualFriends,
		&session.Version,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return session, err
	}

	session.Status, err = engine.ParseStatus(status)
	return session, err
}

func loadRawRoster(ctx context.Context, tx *sql.Tx, campID uuid.UUID) ([]engine.RawCamper, error) {
	q := `
		SELECT id, full_name, date_of_birth, reported_grade, squad_id,
		       medical_notes, allergies, special_considerations, leadership_potential, registered_at
		FROM campers
		WHERE camp_id = $1 AND status = 'registered'
		ORDER BY full_name, id`

	return repository.QueryMany(ctx, tx, q, []any{campID}, func(s repository.Scanner) (engine.RawCamper, error) {
		var c engine.RawCamper
		err := s.Scan(
			&c.AthleteID,
			&c.FullName,
			&c.DateOfBirth,
			&c.ReportedGrade,
			&c.SquadID,
			&c.MedicalNotes,
			&c.Allergies,
			&c.SpecialConsiderations,
			&c.LeadershipPotential,
			&c.RegisteredAt,
		)
		return c, err
	})
}

func loadFriendRequests(ctx context.Context, tx *sql.Tx, campID uuid.UUID) ([]engine.FriendRequest, error) {
	q := "SELECT from_camper_id, to_camper_id FROM friend_requests WHERE camp_id = $1"

	return repository.QueryMany(ctx, tx, q, []any{campID}, func(s repository.Scanner) (engine.FriendRequest, error) {
		var fr engine.FriendRequest
		err := s.Scan(&fr.From, &fr.To)
		return fr, err
	})
}

func loadGroups(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID) ([]engine.Group, error) {
	groups, err := repository.QueryMany(ctx, tx,
		"SELECT id, number, name, color FROM camp_groups WHERE session_id = $1 ORDER BY number",
		[]any{sessionID},
		func(s repository.Scanner) (engine.Group, error) {
			var g engine.Group
			err := s.Scan(&g.ID, &g.Number, &g.Name, &g.Color)
			return g, err
		})
	if err != nil {
		return nil, err
	}

	type assignment struct {
		groupID  uuid.UUID
		camperID uuid.UUID
	}

	assignments, err := repository.QueryMany(ctx, tx,
		"SELECT group_id, camper_id FROM group_assignments WHERE session_id = $1 ORDER BY camper_id",
		[]any{sessionID},
		func(s repository.Scanner) (assignment, error) {
			var a assignment
			err := s.Scan(&a.groupID, &a.camperID)
			return a, err
		})
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]int, len(groups))
	for i := range groups {
		byID[groups[i].ID] = i
	}
	for _, a := range assignments {
		if i, ok := byID[a.groupID]; ok {
			groups[i].CamperIDs = append(groups[i].CamperIDs, a.camperID)
		}
	}

	return groups, nil
}

// syncGroups reconciles the persisted group rows with a solver result.
// Rows for reused groups are updated in place so their IDs survive the run;
// rows absent from the result are removed, then assignments are rebuilt.
func syncGroups(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, groups []engine.Group) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_assignments WHERE session_id = $1", sessionID); err != nil {
		return err
	}

	existing, err := repository.QueryMany(ctx, tx,
		"SELECT id FROM camp_groups WHERE session_id = $1",
		[]any{sessionID},
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		})
	if err != nil {
		return err
	}

	keep := make(map[uuid.UUID]bool, len(groups))
	for _, g := range groups {
		keep[g.ID] = true
	}
	for _, id := range existing {
		if keep[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM camp_groups WHERE id = $1", id); err != nil {
			return err
		}
	}

	for _, g := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO camp_groups(id, session_id, number, name, color)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET number = EXCLUDED.number, name = EXCLUDED.name, color = EXCLUDED.color`,
			g.ID, sessionID, g.Number, g.Name, g.Color,
		); err != nil {
			return err
		}
	}

	return insertAssignments(ctx, tx, sessionID, groups)
}

func replaceAssignments(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, groups []engine.Group) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_assignments WHERE session_id = $1", sessionID); err != nil {
		return err
	}
	return insertAssignments(ctx, tx, sessionID, groups)
}

func insertAssignments(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, groups []engine.Group) error {
	for _, g := range groups {
		for _, camperID := range g.CamperIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO group_assignments(session_id, group_id, camper_id) VALUES ($1, $2, $3)",
				sessionID, g.ID, camperID,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

const violationColumns = `id, violation_type, severity, title, description, group_id,
	       camper_ids, suggested_resolution, resolved, resolution_note, resolved_at`

func loadViolations(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID) ([]engine.Violation, error) {
	q := "SELECT " + violationColumns + " FROM violations WHERE session_id = $1 ORDER BY id"
	return repository.QueryMany(ctx, tx, q, []any{sessionID}, scanViolation)
}

func loadViolation(ctx context.Context, tx *sql.Tx, sessionID, id uuid.UUID) (*engine.Violation, error) {
	q := "SELECT " + violationColumns + " FROM violations WHERE session_id = $1 AND id = $2"
	v, err := repository.QueryOne(ctx, tx, q, []any{sessionID, id}, scanViolation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrViolationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanViolation(s repository.Scanner) (engine.Violation, error) {
	var (
		v         engine.Violation
		vtype     string
		severity  string
		camperIDs []byte
	)
	err := s.Scan(
		&v.ID,
		&vtype,
		&severity,
		&v.Title,
		&v.Description,
		&v.GroupID,
		&camperIDs,
		&v.SuggestedResolution,
		&v.Resolved,
		&v.ResolutionNote,
		&v.ResolvedAt,
	)
	if err != nil {
		return v, err
	}

	v.Type = engine.ViolationType(vtype)
	v.Severity = engine.Severity(severity)
	if err := json.Unmarshal(camperIDs, &v.CamperIDs); err != nil {
		return v, fmt.Errorf("decode camper ids: %w", err)
	}
	return v, nil
}

func replaceViolations(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, violations []engine.Violation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM violations WHERE session_id = $1", sessionID); err != nil {
		return err
	}

	q := `
		INSERT INTO violations(id, session_id, violation_type, severity, title, description,
		                       group_id, camper_ids, suggested_resolution, resolved, resolution_note, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, v := range violations {
		camperIDs, err := json.Marshal(v.CamperIDs)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, q,
			v.ID, sessionID, string(v.Type), string(v.Severity), v.Title, v.Description,
			v.GroupID, camperIDs, v.SuggestedResolution, v.Resolved, v.ResolutionNote, v.ResolvedAt,
		); err != nil {
			return err
		}
	}

	return nil
}
