package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
)

// ProfessionalSource источник профилей профессионалов (репозиторий каталога)
type ProfessionalSource interface {
	GetProfessionalsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
