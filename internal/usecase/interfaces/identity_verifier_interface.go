package interfaces

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
)

var ErrInvalidCredential = errors.New("invalid or expired credential")

// IIdentityVerifier validates a bearer credential issued by the identity
// provider and resolves the caller.
type IIdentityVerifier interface {
	Verify(ctx context.Context, token string) (entities.Principal, error)
}
