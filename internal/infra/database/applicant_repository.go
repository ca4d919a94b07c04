package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

const uniqueViolation = "23505"

type ApplicantRepository struct {
	DB *sql.DB
}

func NewApplicantRepository(db *sql.DB) *ApplicantRepository {
	return &ApplicantRepository{DB: db}
}

func (r *ApplicantRepository) Create(ctx context.Context, a *entity.Applicant) error {
	query := `
		INSERT INTO applicants (
			id, name, email, phone, city, region,
			application_date, workflow_state, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Email,
		a.Phone,
		a.City,
		a.Region,
		a.ApplicationDate,
		string(a.WorkflowState),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *ApplicantRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete applicant %s: %w", id, err)
	}
	return nil
}

func (r *ApplicantRepository) Update(ctx context.Context, a *entity.Applicant) error {
	query := `
		UPDATE applicants
		SET name = $1, phone = $2, city = $3, region = $4, workflow_state = $5, updated_at = $6
		WHERE id = $7
	`

	res, err := r.DB.ExecContext(ctx, query,
		a.Name,
		a.Phone,
		a.City,
		a.Region,
		string(a.WorkflowState),
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrApplicantNotFound
	}
	return nil
}

func (r *ApplicantRepository) FindByEmail(ctx context.Context, email string) (*entity.Applicant, error) {
	query := `
		SELECT id, name, email, phone, city, region,
		       application_date, workflow_state, created_at, updated_at
		FROM applicants
		WHERE email = $1
	`

	var a entity.Applicant
	var state string
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.City,
		&a.Region,
		&a.ApplicationDate,
		&state,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrApplicantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find applicant by email: %w", err)
	}

	a.WorkflowState = entity.WorkflowState(state)
	a.ApplicationDate = entity.TruncateToDate(a.ApplicationDate)
	return &a, nil
}

func (r *ApplicantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM applicants WHERE email = $1)`, email)
}

func (r *ApplicantRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM applicants WHERE phone = $1)`, phone)
}

func (r *ApplicantRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountByState groups applicants whose application_date is in [start, end] by workflow_state.
func (r *ApplicantRepository) CountByState(ctx context.Context, start, end time.Time) ([]entity.StateCount, error) {
	query := `
		SELECT workflow_state, COUNT(*)
		FROM applicants
		WHERE application_date BETWEEN $1 AND $2
		GROUP BY workflow_state
		ORDER BY workflow_state
	`

	rows, err := r.DB.QueryContext(ctx, query,
		start.Format(entity.DateLayout),
		end.Format(entity.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("count applicants by state: %w", err)
	}
	defer rows.Close()

	var counts []entity.StateCount
	for rows.Next() {
		var c entity.StateCount
		if err := rows.Scan(&c.State, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case constraintEmailUnique:
			return entity.ErrEmailAlreadyExists
		case constraintPhoneUnique:
			return entity.ErrPhoneAlreadyExists
		}
	}
	return err
}
