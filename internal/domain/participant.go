package domain

import "strconv"

// ParticipantID is the global identity of a person. Ids are assigned in
// creation order, so sorting by id is a stable, creation-ordered sort.
type ParticipantID int64

func (id ParticipantID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Participant struct {
	ID   ParticipantID
	Name string
}
