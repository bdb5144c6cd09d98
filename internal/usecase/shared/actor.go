package shared

import (
	"boardinghouse/internal/domain/user"

	"github.com/google/uuid"
)

type ActorKind string

const (
	ActorAnonymous ActorKind = "anonymous"
	ActorUser      ActorKind = "user"
	ActorSystem    ActorKind = "system"
)

// Actor is who asks for a lifecycle operation.
type Actor struct {
	Kind   ActorKind
	UserID uuid.UUID
	Role   user.Role
}

func AnonymousActor() Actor {
	return Actor{Kind: ActorAnonymous}
}

func UserActor(id uuid.UUID, role user.Role) Actor {
	return Actor{Kind: ActorUser, UserID: id, Role: role}
}

// SystemActor is the deadline sweeper.
func SystemActor() Actor {
	return Actor{Kind: ActorSystem}
}

func (a Actor) IsSystem() bool    { return a.Kind == ActorSystem }
func (a Actor) IsAnonymous() bool { return a.Kind == ActorAnonymous }
func (a Actor) IsAdmin() bool     { return a.Kind == ActorUser && a.Role.IsAdmin() }

// OwnerID is the user a new booking belongs to, nil for guests.
func (a Actor) OwnerID() *uuid.UUID {
	if a.Kind != ActorUser {
		return nil
	}
	id := a.UserID
	return &id
}

func (a Actor) String() string {
	if a.Kind == ActorUser {
		return string(a.Role) + ":" + a.UserID.String()
	}
	return string(a.Kind)
}
