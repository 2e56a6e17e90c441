package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/logging"
	"github.com/josh-kwaku/travelmate/internal/service"
)

const dateLayout = "2006-01-02"

type tripService interface {
	Create(ctx context.Context, in service.CreateTripInput) (*domain.Trip, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TripHandler struct {
	trips tripService
}

func NewTripHandler(trips tripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r createTripRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}

	start, startErr := parseOptionalDate(r.StartDate)
	if startErr != nil {
		errs = append(errs, FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endErr := parseOptionalDate(r.EndDate)
	if endErr != nil {
		errs = append(errs, FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	return errs
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type tripDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

func toTripDTO(t *domain.Trip) tripDTO {
	return tripDTO{
		ID:        t.ID,
		Title:     t.Title,
		StartDate: formatDate(t.StartDate),
		EndDate:   formatDate(t.EndDate),
		CreatedAt: t.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	start, _ := parseOptionalDate(req.StartDate)
	end, _ := parseOptionalDate(req.EndDate)

	trip, err := h.trips.Create(r.Context(), service.CreateTripInput{
		Title:     strings.TrimSpace(req.Title),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create trip", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTripDTO(trip))
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	trip, err := h.trips.Get(r.Context(), tripID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTripDTO(trip))
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list trips", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]tripDTO, len(trips))
	for i := range trips {
		dtos[i] = toTripDTO(&trips[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.trips.Delete(r.Context(), tripID); err != nil {
		logging.FromContext(r.Context()).Error("failed to delete trip", "error", err, "trip_id", tripID)
		RespondDomainError(w, err)
		return
	}

	RespondNoContent(w)
}
