package campers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/campers"
	"github.com/campward/campward/pkg/pagination"
)

type mockSystem struct {
	listFn         func(ctx context.Context, page pagination.PageRequest, filters campers.Filters) (*pagination.PageResult[campers.Camper], error)
	findFn         func(ctx context.Context, id uuid.UUID) (*campers.Camper, error)
	createFn       func(ctx context.Context, cmd campers.CreateCommand) (*campers.Camper, error)
	cancelFn       func(ctx context.Context, id uuid.UUID) error
	addFriendFn    func(ctx context.Context, camperID, friendID uuid.UUID) (*campers.FriendRequest, error)
	removeFriendFn func(ctx context.Context, camperID, friendID uuid.UUID) error
}

func (m *mockSystem) Handler() *campers.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters campers.Filters) (*pagination.PageResult[campers.Camper], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*campers.Camper, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd campers.CreateCommand) (*campers.Camper, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.cancelFn(ctx, id)
}

func (m *mockSystem) AddFriend(ctx context.Context, camperID, friendID uuid.UUID) (*campers.FriendRequest, error) {
	return m.addFriendFn(ctx, camperID, friendID)
}

func (m *mockSystem) RemoveFriend(ctx context.Context, camperID, friendID uuid.UUID) error {
	return m.removeFriendFn(ctx, camperID, friendID)
}

func newTestHandler(sys campers.System) *campers.Handler {
	return campers.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *campers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleCamper() campers.Camper {
	dob := time.Date(2017, 4, 12, 0, 0, 0, 0, time.UTC)
	return campers.Camper{
		ID:           uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		CampID:       uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		FullName:     "Jamie Doe",
		DateOfBirth:  &dob,
		Status:       campers.StatusRegistered,
		RegisteredAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	camper := sampleCamper()
	sys := &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, _ campers.Filters) (*pagination.PageResult[campers.Camper], error) {
			result := pagination.NewPageResult([]campers.Camper{camper}, 1, 1, 20)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	t.Run("returns paginated list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/campers", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[campers.Camper]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("total = %d, want 1", result.Total)
		}
	})

	t.Run("passes query filters", func(t *testing.T) {
		var captured campers.Filters
		sys.listFn = func(_ context.Context, _ pagination.PageRequest, f campers.Filters) (*pagination.PageResult[campers.Camper], error) {
			captured = f
			result := pagination.NewPageResult([]campers.Camper{}, 0, 1, 20)
			return &result, nil
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/campers?camp_id="+camper.CampID.String()+"&status=registered", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.CampID == nil || *captured.CampID != camper.CampID {
			t.Errorf("camp_id filter = %v, want %v", captured.CampID, camper.CampID)
		}
		if captured.Status == nil || *captured.Status != campers.StatusRegistered {
			t.Errorf("status filter = %v, want registered", captured.Status)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	camper := sampleCamper()

	t.Run("registers camper", func(t *testing.T) {
		var capturedCmd campers.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd campers.CreateCommand) (*campers.Camper, error) {
				capturedCmd = cmd
				return &camper, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(campers.CreateCommand{
			CampID:   camper.CampID,
			FullName: camper.FullName,
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/campers", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if capturedCmd.FullName != camper.FullName {
			t.Errorf("full_name = %q, want %q", capturedCmd.FullName, camper.FullName)
		}
	})

	t.Run("invalid camper returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ campers.CreateCommand) (*campers.Camper, error) {
				return nil, campers.ErrInvalidCamper
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(campers.CreateCommand{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/campers", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerCancel(t *testing.T) {
	camperID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	t.Run("cancels registration", func(t *testing.T) {
		var capturedID uuid.UUID
		sys := &mockSystem{
			cancelFn: func(_ context.Context, id uuid.UUID) error {
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/campers/"+camperID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if capturedID != camperID {
			t.Errorf("id = %v, want %v", capturedID, camperID)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			cancelFn: func(_ context.Context, _ uuid.UUID) error {
				return campers.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/campers/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerAddFriend(t *testing.T) {
	camperID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	friendID := uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

	t.Run("records friend request", func(t *testing.T) {
		sys := &mockSystem{
			addFriendFn: func(_ context.Context, from, to uuid.UUID) (*campers.FriendRequest, error) {
				return &campers.FriendRequest{
					ID:           uuid.New(),
					FromCamperID: from,
					ToCamperID:   to,
				}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(campers.FriendCommand{FriendID: friendID})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/campers/"+camperID.String()+"/friends", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}

		var got campers.FriendRequest
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.FromCamperID != camperID || got.ToCamperID != friendID {
			t.Errorf("request = %v -> %v, want %v -> %v", got.FromCamperID, got.ToCamperID, camperID, friendID)
		}
	})

	t.Run("self friend returns 400", func(t *testing.T) {
		sys := &mockSystem{
			addFriendFn: func(_ context.Context, _, _ uuid.UUID) (*campers.FriendRequest, error) {
				return nil, campers.ErrSelfFriend
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(campers.FriendCommand{FriendID: camperID})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/campers/"+camperID.String()+"/friends", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("cross camp returns 400", func(t *testing.T) {
		sys := &mockSystem{
			addFriendFn: func(_ context.Context, _, _ uuid.UUID) (*campers.FriendRequest, error) {
				return nil, campers.ErrCrossCampFriend
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(campers.FriendCommand{FriendID: friendID})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/campers/"+camperID.String()+"/friends", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerRemoveFriend(t *testing.T) {
	camperID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	friendID := uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

	t.Run("removes friend request", func(t *testing.T) {
		var capturedFrom, capturedTo uuid.UUID
		sys := &mockSystem{
			removeFriendFn: func(_ context.Context, from, to uuid.UUID) error {
				capturedFrom, capturedTo = from, to
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/campers/"+camperID.String()+"/friends/"+friendID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if capturedFrom != camperID || capturedTo != friendID {
			t.Errorf("removed %v -> %v, want %v -> %v", capturedFrom, capturedTo, camperID, friendID)
		}
	})

	t.Run("missing request returns 404", func(t *testing.T) {
		sys := &mockSystem{
			removeFriendFn: func(_ context.Context, _, _ uuid.UUID) error {
				return campers.ErrFriendNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/campers/"+camperID.String()+"/friends/"+friendID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestRawConversion(t *testing.T) {
	camper := sampleCamper()
	raw := camper.Raw()

	if raw.AthleteID != camper.ID {
		t.Errorf("athlete id = %v, want %v", raw.AthleteID, camper.ID)
	}
	if raw.FullName != camper.FullName {
		t.Errorf("full name = %q, want %q", raw.FullName, camper.FullName)
	}
	if raw.DateOfBirth == nil || !raw.DateOfBirth.Equal(*camper.DateOfBirth) {
		t.Errorf("date of birth = %v, want %v", raw.DateOfBirth, camper.DateOfBirth)
	}
	if !raw.RegisteredAt.Equal(camper.RegisteredAt) {
		t.Errorf("registered at = %v, want %v", raw.RegisteredAt, camper.RegisteredAt)
	}
}
