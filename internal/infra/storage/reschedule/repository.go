package reschedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/spa-booking-service/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

var requestColumns = []string{
	"id",
	"booking_id",
	"requested_date",
	"requested_time",
	"original_date",
	"original_time",
	"status",
	"requested_by",
	"response_message",
	"responded_by",
	"created_at",
	"responded_at",
}

// Repository репозиторий заявок на перенос бронирований
// Заявки никогда не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку в статусе pending
// Частичный уникальный индекс по booking_id (status = 'pending') гарантирует
// не больше одной ожидающей заявки даже при одновременных запросах
func (r *Repository) Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = domain.RescheduleStatusPending
	if req.RequestedBy == "" {
		req.RequestedBy = domain.RequestedByClient
	}

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns(
			"id",
			"booking_id",
			"requested_date",
			"requested_time",
			"original_date",
			"original_time",
			"status",
			"requested_by",
		).
		Values(
			req.ID,
			req.BookingID,
			req.RequestedDate.Format(domain.DateFormat),
			req.RequestedTime,
			req.OriginalDate.Format(domain.DateFormat),
			req.OriginalTime,
			req.Status,
			req.RequestedBy,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// HasPending проверяет наличие ожидающей заявки у бронирования
func (r *Repository) HasPending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reschedule_requests").
		Where(squirrel.Eq{
			"booking_id": bookingID,
			"status":     string(domain.RescheduleStatusPending),
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasPending - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasPending - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// Respond фиксирует решение по заявке
// Обновление условное (status = 'pending'), поэтому из двух одновременных ответов
// проходит только один, второй получает ErrAlreadyAnswered
func (r *Repository) Respond(
	ctx context.Context,
	id uuid.UUID,
	status domain.RescheduleStatus,
	message *string,
	respondedBy *string,
) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", status).
		Set("responded_at", squirrel.Expr("NOW()")).
		Set("response_message", message).
		Set("responded_by", respondedBy).
		Where(squirrel.Eq{
			"id":     id,
			"status": string(domain.RescheduleStatusPending),
		}).
		Suffix("RETURNING " + strings.Join(requestColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Respond - build update query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Respond - execute update: %v", ErrExecQuery, err)
	}

	// Ничего не обновлено: заявки нет либо на неё уже ответили
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return nil, ErrAlreadyAnswered
}

// ListByBookingIDs получает все заявки для набора бронирований, новые первыми
func (r *Repository) ListByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.RescheduleRequest, error) {
	result := make(map[uuid.UUID][]domain.RescheduleRequest, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	strIDs := make([]string, len(bookingIDs))
	for i, id := range bookingIDs {
		strIDs[i] = id.String()
	}

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"booking_id": strIDs}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBookingIDs - scan request: %v", ErrScanRow, err)
		}
		result[req.BookingID] = append(result[req.BookingID], *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.RescheduleRequest, error) {
	var req domain.RescheduleRequest
	var createdAt, respondedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.BookingID,
		&req.RequestedDate,
		&req.RequestedTime,
		&req.OriginalDate,
		&req.OriginalTime,
		&req.Status,
		&req.RequestedBy,
		&req.ResponseMessage,
		&req.RespondedBy,
		&createdAt,
		&respondedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	if respondedAt.Valid {
		t := respondedAt.Time
		req.RespondedAt = &t
	}

	return &req, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
