package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// ApplicationRepository handles persistence for job applications.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts an application. The table carries a unique constraint on
// (job_id, student_id); a violation surfaces as ErrDuplicate so the caller
// can treat a concurrent double-submit the same as a detected duplicate.
func (r *ApplicationRepository) Create(ctx context.Context, app types.JobApplication) (types.JobApplication, error) {
	app.AppliedAt = time.Now()

	const query = `
		INSERT INTO job_applications (status, applied_at, resume_key, job_id, student_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING application_id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		app.Status,
		app.AppliedAt,
		nullString(app.ResumeKey),
		app.JobID,
		app.StudentID,
	).Scan(&app.ID); err != nil {
		if isUniqueViolation(err) {
			return types.JobApplication{}, ErrDuplicate
		}
		return types.JobApplication{}, err
	}
	return app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int) (types.JobApplication, error) {
	const query = `
		SELECT application_id, status, applied_at, resume_key, job_id, student_id
		FROM job_applications
		WHERE application_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *ApplicationRepository) GetByJobAndStudent(ctx context.Context, jobID, studentID int) (types.JobApplication, error) {
	const query = `
		SELECT application_id, status, applied_at, resume_key, job_id, student_id
		FROM job_applications
		WHERE job_id = $1 AND student_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, jobID, studentID))
}

func (r *ApplicationRepository) scanOne(row *sql.Row) (types.JobApplication, error) {
	var app types.JobApplication
	var resumeKey sql.NullString
	err := row.Scan(
		&app.ID,
		&app.Status,
		&app.AppliedAt,
		&resumeKey,
		&app.JobID,
		&app.StudentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.JobApplication{}, ErrNotFound
		}
		return types.JobApplication{}, err
	}
	app.ResumeKey = resumeKey.String
	return app, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int) ([]types.JobApplication, error) {
	const query = `
		SELECT application_id, status, applied_at, resume_key, job_id, student_id
		FROM job_applications
		WHERE job_id = $1
		ORDER BY applied_at`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []types.JobApplication
	for rows.Next() {
		var app types.JobApplication
		var resumeKey sql.NullString
		if err := rows.Scan(
			&app.ID,
			&app.Status,
			&app.AppliedAt,
			&resumeKey,
			&app.JobID,
			&app.StudentID,
		); err != nil {
			return nil, err
		}
		app.ResumeKey = resumeKey.String
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ListByStudent returns a student's applications with the job joined in,
// so the listing needs a single query.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int) ([]types.JobApplication, error) {
	const query = `
		SELECT a.application_id, a.status, a.applied_at, a.resume_key, a.job_id, a.student_id,
		       j.job_id, j.title, j.description, j.location, j.salary, j.category,
		       j.deadline, j.status, j.employer_id, u.email, j.created_at
		FROM job_applications a
		JOIN jobs j ON j.job_id = a.job_id
		JOIN users u ON u.user_id = j.employer_id
		WHERE a.student_id = $1
		ORDER BY a.applied_at`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []types.JobApplication
	for rows.Next() {
		var app types.JobApplication
		var job types.Job
		var resumeKey, location, category sql.NullString
		if err := rows.Scan(
			&app.ID,
			&app.Status,
			&app.AppliedAt,
			&resumeKey,
			&app.JobID,
			&app.StudentID,
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
		); err != nil {
			return nil, err
		}
		app.ResumeKey = resumeKey.String
		job.Location = location.String
		job.Category = category.String
		app.Job = &job
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// SetResumeKey records the object-storage key of an uploaded resume.
func (r *ApplicationRepository) SetResumeKey(ctx context.Context, id int, key string) error {
	const query = `UPDATE job_applications SET resume_key = $1 WHERE application_id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
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
