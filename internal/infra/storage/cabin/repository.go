package cabin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CabinService/internal/domain"
	"github.com/m04kA/SMC-CabinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CabinService/pkg/psqlbuilder"
)

// cabinColumns полный набор колонок таблицы cabins
var cabinColumns = []string{
	"id",
	"name",
	"description",
	"slot_duration_minutes",
	"start_time",
	"end_time",
	"restricted_times",
	"max_bookings_per_day",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации кабин
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кабин
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую кабину
func (r *Repository) Create(ctx context.Context, cabin *domain.Cabin) (*domain.Cabin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cabins").
		Columns(
			"name",
			"description",
			"slot_duration_minutes",
			"start_time",
			"end_time",
			"restricted_times",
			"max_bookings_per_day",
			"is_active",
		).
		Values(
			cabin.Name,
			cabin.Description,
			cabin.SlotDurationMinutes,
			cabin.StartTime,
			cabin.EndTime,
			pq.Array(rangesToStrings(cabin.RestrictedRanges)),
			cabin.MaxBookingsPerDay,
			cabin.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cabin.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cabin.CreatedAt = createdAt.Time
	cabin.UpdatedAt = updatedAt.Time

	return cabin, nil
}

// GetByID получает кабину по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cabin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cabinColumns...).
		From("cabins").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	cabin, err := scanCabin(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCabinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cabin: %v", ErrScanRow, err)
	}

	return cabin, nil
}

// List получает все активные кабины, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Cabin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cabinColumns...).
		From("cabins").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cabins := make([]*domain.Cabin, 0)
	for rows.Next() {
		cabin, err := scanCabin(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		cabins = append(cabins, cabin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return cabins, nil
}

// Update обновляет конфигурацию кабины
func (r *Repository) Update(ctx context.Context, id int64, cabin *domain.Cabin) (*domain.Cabin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cabins").
		Set("name", cabin.Name).
		Set("description", cabin.Description).
		Set("slot_duration_minutes", cabin.SlotDurationMinutes).
		Set("start_time", cabin.StartTime).
		Set("end_time", cabin.EndTime).
		Set("restricted_times", pq.Array(rangesToStrings(cabin.RestrictedRanges))).
		Set("max_bookings_per_day", cabin.MaxBookingsPerDay).
		Set("is_active", cabin.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCabinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cabin.ID = id
	cabin.CreatedAt = createdAt.Time
	cabin.UpdatedAt = updatedAt.Time

	return cabin, nil
}

// Delete физически удаляет кабину.
// Политика блокировки удаления при активных бронированиях проверяется в сервисе.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cabins").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCabinNotFound
	}

	return nil
}

// scanCabin сканирует одну строку в domain.Cabin
func scanCabin(scan func(dest ...interface{}) error) (*domain.Cabin, error) {
	var cabin domain.Cabin
	var restricted pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&cabin.ID,
		&cabin.Name,
		&cabin.Description,
		&cabin.SlotDurationMinutes,
		&cabin.StartTime,
		&cabin.EndTime,
		&restricted,
		&cabin.MaxBookingsPerDay,
		&cabin.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ranges, err := stringsToRanges(restricted)
	if err != nil {
		return nil, err
	}

	cabin.RestrictedRanges = ranges
	cabin.CreatedAt = createdAt.Time
	cabin.UpdatedAt = updatedAt.Time

	return &cabin, nil
}

// rangesToStrings сериализует диапазоны в формат хранения "HH:MM-HH:MM"
func rangesToStrings(ranges []domain.TimeRange) []string {
	result := make([]string, len(ranges))
	for i, r := range ranges {
		result[i] = r.String()
	}
	return result
}

// stringsToRanges разбирает диапазоны из формата хранения
func stringsToRanges(values []string) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(values))
	for _, v := range values {
		r, err := domain.ParseTimeRange(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRestrictedRange, err)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
