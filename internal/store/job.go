package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// JobRepository handles persistence for job postings.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// jobColumns is the select list shared by all job reads. The employer's
// email is joined in so callers can run ownership checks without a second
// lookup.
const jobColumns = `
	j.job_id, j.title, j.description, j.location, j.salary, j.category,
	j.deadline, j.status, j.employer_id, u.email, j.created_at`

const jobFrom = `
	FROM jobs j
	JOIN users u ON u.user_id = j.employer_id`

func (r *JobRepository) Get(ctx context.Context, id int) (types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + ` WHERE j.job_id = $1`
	return scanJobRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	job.CreatedAt = time.Now()

	const query = `
		INSERT INTO jobs (title, description, location, salary, category, deadline, status, employer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING job_id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		job.Title,
		job.Description,
		nullString(job.Location),
		job.Salary,
		nullString(job.Category),
		job.Deadline,
		job.Status,
		job.EmployerID,
		job.CreatedAt,
	).Scan(&job.ID); err != nil {
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	const query = `
		UPDATE jobs
		SET title = $1,
			description = $2,
			location = $3,
			salary = $4,
			category = $5,
			deadline = $6,
			status = $7
		WHERE job_id = $8`
	result, err := r.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		nullString(job.Location),
		job.Salary,
		nullString(job.Category),
		job.Deadline,
		job.Status,
		job.ID,
	)
	if err != nil {
		return types.Job{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Job{}, err
	}
	if affected == 0 {
		return types.Job{}, ErrNotFound
	}
	return job, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id int, status types.JobStatus) error {
	const query = `UPDATE jobs SET status = $1 WHERE job_id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job. Its applications go with it via the foreign key
// cascade.
func (r *JobRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM jobs WHERE job_id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + ` ORDER BY j.job_id`
	return r.queryJobs(ctx, query)
}

func (r *JobRepository) ListByStatus(ctx context.Context, status types.JobStatus) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + ` WHERE j.status = $1 ORDER BY j.job_id`
	return r.queryJobs(ctx, query, status)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + ` WHERE j.employer_id = $1 ORDER BY j.job_id`
	return r.queryJobs(ctx, query, employerID)
}

// SearchApproved finds approved jobs whose title, description, location, or
// category contains the keyword, case-insensitively.
func (r *JobRepository) SearchApproved(ctx context.Context, keyword string) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + `
		WHERE j.status = $1
		  AND (j.title ILIKE $2 OR j.description ILIKE $2
		       OR j.location ILIKE $2 OR j.category ILIKE $2)
		ORDER BY j.job_id`
	return r.queryJobs(ctx, query, types.JobApproved, "%"+keyword+"%")
}

// ListApprovedByCategory finds approved jobs with an exact,
// case-insensitive category match.
func (r *JobRepository) ListApprovedByCategory(ctx context.Context, category string) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + `
		WHERE j.status = $1 AND LOWER(j.category) = LOWER($2)
		ORDER BY j.job_id`
	return r.queryJobs(ctx, query, types.JobApproved, category)
}

// ListApprovedByLocation finds approved jobs whose location contains the
// given substring, case-insensitively.
func (r *JobRepository) ListApprovedByLocation(ctx context.Context, location string) ([]types.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + `
		WHERE j.status = $1 AND j.location ILIKE $2
		ORDER BY j.job_id`
	return r.queryJobs(ctx, query, types.JobApproved, "%"+location+"%")
}

// DistinctCategories returns the distinct non-null categories across
// approved jobs, used to populate filter controls.
func (r *JobRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT category FROM jobs
		WHERE status = $1 AND category IS NOT NULL
		ORDER BY category`
	return r.queryStrings(ctx, query, types.JobApproved)
}

// DistinctLocations returns the distinct non-null locations across
// approved jobs.
func (r *JobRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT location FROM jobs
		WHERE status = $1 AND location IS NOT NULL
		ORDER BY location`
	return r.queryStrings(ctx, query, types.JobApproved)
}

func (r *JobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]types.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (types.Job, error) {
	var job types.Job
	var location, category sql.NullString
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&location,
		&job.Salary,
		&category,
		&job.Deadline,
		&job.Status,
		&job.EmployerID,
		&job.EmployerEmail,
		&job.CreatedAt,
	)
	if err != nil {
		return types.Job{}, err
	}
	job.Location = location.String
	job.Category = category.String
	return job, nil
}

func scanJobRow(row *sql.Row) (types.Job, error) {
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
