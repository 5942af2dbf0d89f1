package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybook/internal/app/availability"
	"staybook/internal/app/locks"
	blockapp "staybook/internal/app/services/block"
	bookingapp "staybook/internal/app/services/booking"
	guestapp "staybook/internal/app/services/guest"
	propertyapp "staybook/internal/app/services/property"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testServer struct {
	router     http.Handler
	propertyID string
	ownerID    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	factory := memory.NewFactory()

	owner := &domainproperty.Owner{ID: "owner-1", FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com"}
	if err := factory.OwnersRepo.Save(ctx, owner); err != nil {
		t.Fatalf("save owner: %v", err)
	}
	prop := &domainproperty.Property{ID: "prop-1", OwnerID: owner.ID, Name: "Beachfront Villa", Address: "123 Ocean Drive"}
	if err := factory.PropertiesRepo.Save(ctx, prop); err != nil {
		t.Fatalf("save property: %v", err)
	}

	propertyLocks := locks.NewPropertyLocks()
	checker := availability.Checker{Clock: fixedClock}
	bookingSvc := &bookingapp.Service{
		UoW:     factory,
		Locks:   propertyLocks,
		Guests:  &guestapp.Service{},
		Checker: checker,
		Clock:   fixedClock,
	}
	blockSvc := &blockapp.Service{
		UoW:     factory,
		Locks:   propertyLocks,
		Checker: checker,
		Clock:   fixedClock,
	}

	router := NewRouter(obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Booking:  BookingHandler{Service: bookingSvc},
		Block:    BlockHandler{Service: blockSvc},
		Property: PropertyHandler{Service: &propertyapp.Service{UoW: factory}},
	})
	return &testServer{router: router, propertyID: string(prop.ID), ownerID: string(owner.ID)}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (s *testServer) createBooking(t *testing.T, start, end string) bookingResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id":      s.propertyID,
		"guest_email":      "john.doe@example.com",
		"guest_first_name": "John",
		"guest_last_name":  "Doe",
		"start_date":       start,
		"end_date":         end,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create booking: status %d body %s", rec.Code, rec.Body.String())
	}
	return decode[bookingResponse](t, rec)
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)

	b := s.createBooking(t, "2026-06-10", "2026-06-15")
	if b.Status != "CONFIRMED" {
		t.Fatalf("status = %q", b.Status)
	}
	if b.StartDate != "2026-06-10" || b.EndDate != "2026-06-15" {
		t.Fatalf("dates = %s..%s", b.StartDate, b.EndDate)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/bookings/"+b.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	// Overlap is rejected with 409.
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": s.propertyID,
		"guest_email": "jane.smith@example.com",
		"start_date":  "2026-06-12",
		"end_date":    "2026-06-20",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlap: status %d, want 409", rec.Code)
	}

	// Cancel frees the range; a second cancel conflicts.
	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/"+b.ID+"/cancel", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status %d", rec.Code)
	}
	if got := decode[bookingResponse](t, rec); got.Status != "CANCELED" {
		t.Fatalf("status after cancel = %q", got.Status)
	}
	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/"+b.ID+"/cancel", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("double cancel: status %d, want 409", rec.Code)
	}

	rec = s.do(t, http.MethodPatch, "/api/v1/bookings/"+b.ID+"/rebook", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rebook: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodDelete, "/api/v1/bookings/"+b.ID, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/v1/bookings/"+b.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status %d, want 404", rec.Code)
	}
}

func TestBookingUpdate(t *testing.T) {
	s := newTestServer(t)
	b := s.createBooking(t, "2026-06-10", "2026-06-15")

	rec := s.do(t, http.MethodPatch, "/api/v1/bookings/"+b.ID, map[string]string{
		"start_date": "2026-06-11",
		"end_date":   "2026-06-16",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", rec.Code, rec.Body.String())
	}
	got := decode[bookingResponse](t, rec)
	if got.StartDate != "2026-06-11" || got.EndDate != "2026-06-16" {
		t.Fatalf("dates = %s..%s", got.StartDate, got.EndDate)
	}
}

func TestBookingValidationStatuses(t *testing.T) {
	s := newTestServer(t)

	// Malformed date string.
	rec := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": s.propertyID,
		"guest_email": "john.doe@example.com",
		"start_date":  "June 10th",
		"end_date":    "2026-06-15",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status %d, want 400", rec.Code)
	}

	// Start after end.
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": s.propertyID,
		"guest_email": "john.doe@example.com",
		"start_date":  "2026-06-15",
		"end_date":    "2026-06-10",
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("inverted range: status %d, want 422", rec.Code)
	}

	// Unknown property.
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": "missing",
		"guest_email": "john.doe@example.com",
		"start_date":  "2026-06-10",
		"end_date":    "2026-06-15",
	}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown property: status %d, want 404", rec.Code)
	}
}

func TestBlockFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/blocks", map[string]string{
		"property_id": s.propertyID,
		"owner_id":    s.ownerID,
		"start_date":  "2026-07-01",
		"end_date":    "2026-07-10",
		"reason":      "maintenance",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create block: status %d body %s", rec.Code, rec.Body.String())
	}
	blk := decode[blockResponse](t, rec)

	// A booking over the blocked range conflicts.
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": s.propertyID,
		"guest_email": "john.doe@example.com",
		"start_date":  "2026-07-05",
		"end_date":    "2026-07-12",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("booking over block: status %d, want 409", rec.Code)
	}

	// Update requires the owning identity.
	rec = s.do(t, http.MethodPatch, "/api/v1/blocks/"+blk.ID, map[string]string{"reason": "renovation"},
		map[string]string{"X-Owner-ID": "intruder"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update: status %d, want 403", rec.Code)
	}
	rec = s.do(t, http.MethodPatch, "/api/v1/blocks/"+blk.ID, map[string]string{"reason": "renovation"},
		map[string]string{"X-Owner-ID": s.ownerID})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decode[blockResponse](t, rec); got.Reason != "renovation" {
		t.Fatalf("reason = %q", got.Reason)
	}

	// Missing owner header is a bad request, not forbidden.
	rec = s.do(t, http.MethodDelete, "/api/v1/blocks/"+blk.ID, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete without owner: status %d, want 400", rec.Code)
	}
	rec = s.do(t, http.MethodDelete, "/api/v1/blocks/"+blk.ID, nil, map[string]string{"X-Owner-ID": s.ownerID})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	// Blocked range is bookable after the delete.
	rec = s.do(t, http.MethodPost, "/api/v1/bookings", map[string]string{
		"property_id": s.propertyID,
		"guest_email": "john.doe@example.com",
		"start_date":  "2026-07-05",
		"end_date":    "2026-07-12",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking after block delete: status %d", rec.Code)
	}
}

func TestBlockCreateNotOwner(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/blocks", map[string]string{
		"property_id": s.propertyID,
		"owner_id":    "intruder",
		"start_date":  "2026-07-01",
		"end_date":    "2026-07-10",
	}, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestPropertyCatalog(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/properties", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	props := decode[[]propertyResponse](t, rec)
	if len(props) != 1 || props[0].ID != s.propertyID {
		t.Fatalf("properties = %+v", props)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/properties/"+s.propertyID+"/bookings", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list bookings: status %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/owners/"+s.ownerID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get owner: status %d", rec.Code)
	}
	if o := decode[ownerResponse](t, rec); o.Email != "alice@example.com" {
		t.Fatalf("owner = %+v", o)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/owners/missing", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing owner: status %d, want 404", rec.Code)
	}
}

func TestListBookingsByGuest(t *testing.T) {
	s := newTestServer(t)
	b := s.createBooking(t, "2026-06-10", "2026-06-15")

	rec := s.do(t, http.MethodGet, "/api/v1/guests/"+b.GuestID+"/bookings", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by guest: status %d body %s", rec.Code, rec.Body.String())
	}
	bs := decode[[]bookingResponse](t, rec)
	if len(bs) != 1 || bs[0].ID != b.ID {
		t.Fatalf("bookings = %+v, want only %s", bs, b.ID)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/guests/missing/bookings", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown guest: status %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/livez", "/readyz"} {
		rec := s.do(t, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}
