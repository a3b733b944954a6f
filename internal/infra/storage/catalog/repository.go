package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/spa-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, вариации цен и профессионалы
// Каталог редактируется отдельной админкой, здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServicesByIDs получает услуги вместе с вариациями цен
// Отсутствующие ID просто не попадают в результат, проверку делает вызывающий код
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error) {
	result := make(map[int64]domain.Service, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"duration_minutes",
		"professional_id",
		"category_id",
		"image_url",
	).
		From("services").
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids))).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var service domain.Service
		var professionalID uuid.NullUUID

		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Price,
			&service.DurationMinutes,
			&professionalID,
			&service.CategoryID,
			&service.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan service: %v", ErrScanRow, err)
		}

		if professionalID.Valid {
			id := professionalID.UUID
			service.ProfessionalID = &id
		}

		result[service.ID] = service
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %v", ErrScanRow, err)
	}

	if len(result) == 0 {
		return result, nil
	}

	if err := r.attachVariations(ctx, executor, result); err != nil {
		return nil, err
	}

	return result, nil
}

// attachVariations догружает вариации цен одним запросом
func (r *Repository) attachVariations(ctx context.Context, executor DBExecutor, services map[int64]domain.Service) error {
	ids := make([]int64, 0, len(services))
	for id := range services {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_minutes",
		"price",
		"display_order",
	).
		From("service_price_variations").
		Where(squirrel.Expr("service_id = ANY(?)", pq.Array(ids))).
		OrderBy("service_id ASC, display_order ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachVariations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachVariations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.PriceVariation
		err := rows.Scan(
			&v.ID,
			&v.ServiceID,
			&v.Name,
			&v.DurationMinutes,
			&v.Price,
			&v.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("%w: attachVariations - scan variation: %v", ErrScanRow, err)
		}

		service := services[v.ServiceID]
		service.Variations = append(service.Variations, v)
		services[v.ServiceID] = service
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachVariations - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetProfessional получает профессионала по ID
func (r *Repository) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone", "email").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Phone, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetProfessionalsByIDs получает профессионалов пачкой, результат индексирован по ID
func (r *Repository) GetProfessionalsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Professional, error) {
	result := make(map[uuid.UUID]domain.Professional, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query, args, err := psqlbuilder.Select("id", "name", "phone", "email").
		From("professionals").
		Where(squirrel.Eq{"id": strIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Professional
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email); err != nil {
			return nil, fmt.Errorf("%w: GetProfessionalsByIDs - scan professional: %v", ErrScanRow, err)
		}
		result[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalsByIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
