package camps_test

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

	"github.com/campward/campward/internal/camps"
	"github.com/campward/campward/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters camps.Filters) (*pagination.PageResult[camps.Camp], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*camps.Camp, error)
	createFn func(ctx context.Context, cmd camps.CreateCommand) (*camps.Camp, error)
	updateFn func(ctx context.Context, id uuid.UUID, cmd camps.UpdateCommand) (*camps.Camp, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *camps.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters camps.Filters) (*pagination.PageResult[camps.Camp], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*camps.Camp, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd camps.CreateCommand) (*camps.Camp, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd camps.UpdateCommand) (*camps.Camp, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys camps.System) *camps.Handler {
	return camps.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *camps.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleCamp() camps.Camp {
	return camps.Camp{
		ID:                 uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:               "Eagle Ridge Summer Camp",
		Location:           "Boulder, CO",
		StartDate:          time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC),
		RegistrationCutoff: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		MaxGroupSize:       15,
		MaxGradeSpread:     2,
		CreatedAt:          time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	camp := sampleCamp()
	sys := &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, _ camps.Filters) (*pagination.PageResult[camps.Camp], error) {
			result := pagination.NewPageResult([]camps.Camp{camp}, 1, 1, 20)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	t.Run("returns paginated list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/camps", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[camps.Camp]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if result.Total != 1 {
			t.Errorf("total = %d, want 1", result.Total)
		}
		if len(result.Data) != 1 {
			t.Fatalf("data length = %d, want 1", len(result.Data))
		}
		if result.Data[0].ID != camp.ID {
			t.Errorf("id = %v, want %v", result.Data[0].ID, camp.ID)
		}
	})

	t.Run("passes query filters", func(t *testing.T) {
		var captured camps.Filters
		sys.listFn = func(_ context.Context, _ pagination.PageRequest, f camps.Filters) (*pagination.PageResult[camps.Camp], error) {
			captured = f
			result := pagination.NewPageResult([]camps.Camp{}, 0, 1, 20)
			return &result, nil
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/camps?location=Boulder&starts_after=2026-06-01T00:00:00Z", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Location == nil || *captured.Location != "Boulder" {
			t.Errorf("location filter = %v, want Boulder", captured.Location)
		}
		if captured.StartsAfter == nil || !captured.StartsAfter.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("starts_after filter = %v, want 2026-06-01", captured.StartsAfter)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	camp := sampleCamp()

	t.Run("returns camp by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*camps.Camp, error) {
				if id != camp.ID {
					return nil, camps.ErrNotFound
				}
				return &camp, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/camps/"+camp.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got camps.Camp
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != camp.ID {
			t.Errorf("id = %v, want %v", got.ID, camp.ID)
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/camps/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*camps.Camp, error) {
				return nil, camps.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/camps/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	camp := sampleCamp()

	t.Run("creates camp from json body", func(t *testing.T) {
		var capturedCmd camps.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd camps.CreateCommand) (*camps.Camp, error) {
				capturedCmd = cmd
				return &camp, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(camps.CreateCommand{
			Name:               camp.Name,
			Location:           camp.Location,
			StartDate:          camp.StartDate,
			EndDate:            camp.EndDate,
			RegistrationCutoff: camp.RegistrationCutoff,
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/camps", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if capturedCmd.Name != camp.Name {
			t.Errorf("name = %q, want %q", capturedCmd.Name, camp.Name)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/camps", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid dates return 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, _ camps.CreateCommand) (*camps.Camp, error) {
				return nil, camps.ErrInvalidDates
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(camps.CreateCommand{Name: "Backwards Camp"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/camps", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	camp := sampleCamp()

	t.Run("applies partial update", func(t *testing.T) {
		var capturedCmd camps.UpdateCommand
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ uuid.UUID, cmd camps.UpdateCommand) (*camps.Camp, error) {
				capturedCmd = cmd
				return &camp, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		name := "Renamed Camp"
		body, _ := json.Marshal(camps.UpdateCommand{Name: &name})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/camps/"+camp.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedCmd.Name == nil || *capturedCmd.Name != name {
			t.Errorf("name = %v, want %q", capturedCmd.Name, name)
		}
		if capturedCmd.Location != nil {
			t.Errorf("location = %v, want nil", capturedCmd.Location)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			updateFn: func(_ context.Context, _ uuid.UUID, _ camps.UpdateCommand) (*camps.Camp, error) {
				return nil, camps.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(camps.UpdateCommand{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/camps/"+uuid.New().String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	campID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	t.Run("deletes camp", func(t *testing.T) {
		var capturedID uuid.UUID
		sys := &mockSystem{
			deleteFn: func(_ context.Context, id uuid.UUID) error {
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/camps/"+campID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if capturedID != campID {
			t.Errorf("id = %v, want %v", capturedID, campID)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return camps.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/camps/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerRoutes(t *testing.T) {
	sys := &mockSystem{}
	group := newTestHandler(sys).Routes()

	if group.Prefix != "/camps" {
		t.Errorf("prefix = %q, want /camps", group.Prefix)
	}

	want := []struct {
		method  string
		pattern string
	}{
		{"GET", ""},
		{"GET", "/{id}"},
		{"POST", ""},
		{"POST", "/search"},
		{"PUT", "/{id}"},
		{"DELETE", "/{id}"},
	}

	if len(group.Routes) != len(want) {
		t.Fatalf("route count = %d, want %d", len(group.Routes), len(want))
	}

	for i, w := range want {
		r := group.Routes[i]
		if r.Method != w.method || r.Pattern != w.pattern {
			t.Errorf("route[%d] = %s %s, want %s %s", i, r.Method, r.Pattern, w.method, w.pattern)
		}
	}
}
