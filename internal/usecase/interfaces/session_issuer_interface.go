package interfaces

import "tallerpro/internal/domain/entities"

// ISessionIssuer signs sessions into bearer tokens and verifies them back.
type ISessionIssuer interface {
	Issue(s entities.Session) (string, error)
	Parse(token string) (entities.Session, error)
}
