package measurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sam4000133/HealthTrack-sub000/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const mCols = `id, user_id, type, recorded_at, note,
	glucose_value, systolic, diastolic, heart_rate, weight_grams,
	created_at, updated_at`

func (r *repoPG) scanMeasurement(row pgx.Row) (*Measurement, error) {
	var (
		m                       Measurement
		glucose                 *int
		systolic, diastolic, hr *int
		grams                   *int
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.RecordedAt, &m.Note,
		&glucose, &systolic, &diastolic, &hr, &grams,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	switch m.Type {
	case TypeGlucose:
		if glucose != nil {
			m.Glucose = &GlucoseReading{Value: *glucose}
		}
	case TypeBloodPressure:
		if systolic != nil && diastolic != nil {
			m.BloodPressure = &BloodPressureReading{Systolic: *systolic, Diastolic: *diastolic, HeartRate: hr}
		}
	case TypeWeight:
		if grams != nil {
			m.Weight = &WeightReading{Grams: *grams}
		}
	}
	return &m, nil
}

func payloadColumns(m *Measurement) (glucose, systolic, diastolic, hr, grams *int) {
	if m.Glucose != nil {
		glucose = &m.Glucose.Value
	}
	if m.BloodPressure != nil {
		systolic = &m.BloodPressure.Systolic
		diastolic = &m.BloodPressure.Diastolic
		hr = m.BloodPressure.HeartRate
	}
	if m.Weight != nil {
		grams = &m.Weight.Grams
	}
	return
}

func (r *repoPG) Create(ctx context.Context, m *Measurement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	glucose, systolic, diastolic, hr, grams := payloadColumns(m)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO measurements (id, user_id, type, recorded_at, note,
			glucose_value, systolic, diastolic, heart_rate, weight_grams)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.UserID, m.Type, m.RecordedAt, m.Note,
		glucose, systolic, diastolic, hr, grams)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	return r.scanMeasurement(r.conn(ctx).QueryRow(ctx,
		`SELECT `+mCols+` FROM measurements WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, m *Measurement) error {
	glucose, systolic, diastolic, hr, grams := payloadColumns(m)
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE measurements SET recorded_at=$2, note=$3,
			glucose_value=$4, systolic=$5, diastolic=$6, heart_rate=$7, weight_grams=$8,
			updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.RecordedAt, m.Note, glucose, systolic, diastolic, hr, grams)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Measurement, int, error) {
	where := `user_id = $1`
	args := []interface{}{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND recorded_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND recorded_at < $%d`, len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM measurements WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM measurements WHERE %s ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d`,
		mCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := []*Measurement{}
	for rows.Next() {
		m, err := r.scanMeasurement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListWindow(ctx context.Context, userID uuid.UUID, typ Type, start, end time.Time) ([]*Measurement, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+mCols+` FROM measurements
		WHERE user_id = $1 AND type = $2 AND recorded_at >= $3 AND recorded_at < $4
		ORDER BY recorded_at DESC`,
		userID, typ, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Measurement{}
	for rows.Next() {
		m, err := r.scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
