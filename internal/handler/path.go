package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

// A malformed id in the path cannot name an existing resource, so it is
// reported as not found.
func uuidFromPath(r *http.Request, name string) (uuid.UUID, *AppError) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}
	return id, nil
}

func participantIDFromPath(r *http.Request) (domain.ParticipantID, *AppError) {
	id, err := strconv.ParseInt(r.PathValue("participantID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrResourceNotFound
	}
	return domain.ParticipantID(id), nil
}
