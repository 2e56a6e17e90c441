package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/logging"
)

const maxNameLength = 100

type participantService interface {
	Add(ctx context.Context, tripID uuid.UUID, name string) (*domain.Participant, error)
	List(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	Remove(ctx context.Context, tripID uuid.UUID, id domain.ParticipantID) error
}

type ParticipantHandler struct {
	participants participantService
}

func NewParticipantHandler(participants participantService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants}
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

func (r addParticipantRequest) Validate() []FieldError {
	var errs []FieldError
	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if len(name) > maxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	return errs
}

type participantDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toParticipantDTO(p *domain.Participant) participantDTO {
	return participantDTO{ID: int64(p.ID), Name: p.Name}
}

func (h *ParticipantHandler) Add(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	p, err := h.participants.Add(r.Context(), tripID, strings.TrimSpace(req.Name))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to add participant", "error", err, "trip_id", tripID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toParticipantDTO(p))
}

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	participants, err := h.participants.List(r.Context(), tripID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]participantDTO, len(participants))
	for i := range participants {
		dtos[i] = toParticipantDTO(&participants[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *ParticipantHandler) Remove(w http.ResponseWriter, r *http.Request) {
	tripID, appErr := uuidFromPath(r, "tripID")
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	participantID, appErr := participantIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.participants.Remove(r.Context(), tripID, participantID); err != nil {
		logging.FromContext(r.Context()).Error("failed to remove participant",
			"error", err, "trip_id", tripID, "participant_id", participantID)
		RespondDomainError(w, err)
		return
	}

	RespondNoContent(w)
}
