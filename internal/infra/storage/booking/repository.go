package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/spa-booking-service/internal/domain"
	"github.com/m04kA/spa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/spa-booking-service/pkg/psqlbuilder"
	"github.com/m04kA/spa-booking-service/pkg/types"
)

var bookingColumns = []string{
	"id",
	"client_id",
	"professional_id",
	"date",
	"time",
	"status",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и его позиции (услуги)
// Должен вызываться внутри транзакции (txmanager.Do), иначе при ошибке вставки
// позиций останется бронирование без услуг
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if len(booking.Items) == 0 {
		return nil, ErrNoItems
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.Status == "" {
		booking.Status = domain.StatusScheduled
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"client_id",
			"professional_id",
			"date",
			"time",
			"status",
		).
		Values(
			booking.ID,
			booking.ClientID,
			booking.ProfessionalID,
			booking.Date.Format(domain.DateFormat),
			booking.Time,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Все позиции одной вставкой
	itemsInsert := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id", "variation_id", "quantity")
	for _, item := range booking.Items {
		itemsInsert = itemsInsert.Values(booking.ID, item.ServiceID, item.VariationID, item.Quantity)
	}

	query, args, err = itemsInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build items insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute items insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с позициями
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	items, err := r.getItems(ctx, executor, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Items = items[booking.ID]

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени (ASC)
// В SQL уходят только фильтры по профессионалу, датам, времени и телефону клиента;
// фильтры по услуге и тексту клиента применяются после обогащения
//
// Примеры использования:
//
// 1. Расписание профессионала на день:
//    filter := domain.BookingsFilter{ProfessionalID: &id, DateFrom: &day, DateTo: &day}
//
// 2. Бронирования на точное время (диапазон игнорируется):
//    filter := domain.BookingsFilter{Time: &t, TimeFrom: &from}
//
// 3. Портал клиента:
//    filter := domain.BookingsFilter{ClientPhone: &phone}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.DateTo.Format(domain.DateFormat)})
	}

	// Точное время имеет приоритет над диапазоном
	if filter.HasExactTime() {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time": filter.Time.String()})
	} else {
		if filter.TimeFrom != nil && !filter.TimeFrom.IsZero() {
			selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"time": filter.TimeFrom.String()})
		}
		if filter.TimeTo != nil && !filter.TimeTo.IsZero() {
			selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"time": filter.TimeTo.String()})
		}
	}

	if filter.ClientPhone != nil {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("client_id IN (SELECT id FROM clients WHERE phone = ?)", *filter.ClientPhone),
		)
	}

	query, args, err := selectBuilder.OrderBy("date ASC", "time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
		ids = append(ids, booking.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	items, err := r.getItems(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].Items = items[bookings[i].ID]
	}

	return bookings, nil
}

// UpdateStatus меняет статус бронирования и проставляет метки времени
// completed_at/cancelled_at ставятся при переходе в соответствующий статус
// При guardFinal = true бронирование в финальном статусе не меняется: условие
// стоит в WHERE, поэтому два конкурирующих запроса не могут оба пройти проверку
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, guardFinal bool) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()"))

	switch status {
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", squirrel.Expr("NOW()"))
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	updateBuilder = updateBuilder.Where(squirrel.Eq{"id": id})

	if guardFinal {
		final := make([]string, len(domain.FinalStatuses))
		for i, s := range domain.FinalStatuses {
			final[i] = string(s)
		}
		updateBuilder = updateBuilder.Where(squirrel.NotEq{"status": final})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if !guardFinal {
		return ErrBookingNotFound
	}

	// Ничего не обновлено: бронирования нет либо оно уже в финальном статусе
	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBookingNotFound
	}

	return ErrBookingFinalized
}

// UpdateSchedule переносит бронирование на новые дату и время
func (r *Repository) UpdateSchedule(ctx context.Context, id uuid.UUID, date time.Time, at types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("date", date.Format(domain.DateFormat)).
		Set("time", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id uuid.UUID) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// getItems загружает позиции для набора бронирований одним запросом
func (r *Repository) getItems(ctx context.Context, executor DBExecutor, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.BookingItem, error) {
	strIDs := make([]string, len(bookingIDs))
	for i, id := range bookingIDs {
		strIDs[i] = id.String()
	}

	query, args, err := psqlbuilder.Select("booking_id", "service_id", "variation_id", "quantity").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": strIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]domain.BookingItem, len(bookingIDs))
	for rows.Next() {
		var bookingID uuid.UUID
		var item domain.BookingItem
		var quantity sql.NullInt64

		if err := rows.Scan(&bookingID, &item.ServiceID, &item.VariationID, &quantity); err != nil {
			return nil, fmt.Errorf("%w: getItems - scan item: %v", ErrScanRow, err)
		}

		item.Quantity = domain.DefaultQuantity
		if quantity.Valid && quantity.Int64 > 0 {
			item.Quantity = int(quantity.Int64)
		}

		items[bookingID] = append(items[bookingID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var professionalID uuid.NullUUID
	var status sql.NullString
	var completedAt, cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&professionalID,
		&booking.Date,
		&booking.Time,
		&status,
		&completedAt,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if professionalID.Valid {
		id := professionalID.UUID
		booking.ProfessionalID = &id
	}

	booking.Status = domain.StatusScheduled
	if status.Valid && status.String != "" {
		booking.Status = domain.BookingStatus(status.String)
	}

	if completedAt.Valid {
		t := completedAt.Time
		booking.CompletedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
