package events

import (
	"time"

	"github.com/google/uuid"

	"licensing-system/pkg/constants"
)

const (
	RequestCreated      = "request.created"
	RequestTransitioned = "request.transitioned"
)

// RequestCreatedEvent is published after a new request is committed.
type RequestCreatedEvent struct {
	RequestID     uuid.UUID
	RequestNumber string
	ProvinceID    int
	SubmitterID   uuid.UUID
	FeeAmount     int64
	At            time.Time
}

func (e RequestCreatedEvent) Name() string {
	return RequestCreated
}

// RequestTransitionedEvent is published after a workflow action is committed.
type RequestTransitionedEvent struct {
	RequestID     uuid.UUID
	RequestNumber string
	Action        constants.RequestAction
	From          string
	To            string
	FromStatus    constants.RequestStatus
	ToStatus      constants.RequestStatus
	ActorID       uuid.UUID
	ActorRole     constants.Role
	At            time.Time
}

func (e RequestTransitionedEvent) Name() string {
	return RequestTransitioned
}
