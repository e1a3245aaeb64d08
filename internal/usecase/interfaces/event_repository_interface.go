package interfaces

import (
	"context"
	"eventos_inscricoes/internal/domain/entities"
)

// IEventRepository reads the event catalogue mirrored from the CMS.
type IEventRepository interface {
	GetByID(ctx context.Context, id string) (entities.Event, error)
}
