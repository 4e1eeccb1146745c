package services

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/vancoder1/CampusJobBoardSystem/internal/events"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Get(ctx context.Context, id int) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
	Update(ctx context.Context, job types.Job) (types.Job, error)
	UpdateStatus(ctx context.Context, id int, status types.JobStatus) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]types.Job, error)
	ListByStatus(ctx context.Context, status types.JobStatus) ([]types.Job, error)
	ListByEmployer(ctx context.Context, employerID int) ([]types.Job, error)
	SearchApproved(ctx context.Context, keyword string) ([]types.Job, error)
	ListApprovedByCategory(ctx context.Context, category string) ([]types.Job, error)
	ListApprovedByLocation(ctx context.Context, location string) ([]types.Job, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}

// JobService encapsulates the job posting lifecycle: employer-side create,
// edit, and delete, admin-side approval, and the student-facing catalog.
type JobService struct {
	repo      JobRepository
	users     UserRepository
	publisher events.Publisher
}

func NewJobService(repo JobRepository, users UserRepository, publisher events.Publisher) *JobService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &JobService{repo: repo, users: users, publisher: publisher}
}

// PostJob validates the draft, resolves the employer by email, and persists
// the job. New postings always start PENDING regardless of the draft's
// status field.
func (s *JobService) PostJob(ctx context.Context, draft types.Job, employerEmail string) (types.Job, error) {
	if err := validateJobFields(draft); err != nil {
		return types.Job{}, err
	}
	if draft.Deadline != nil && draft.Deadline.Before(startOfToday()) {
		return types.Job{}, newValidationError("deadline", "deadline must be today or in the future")
	}

	employer, err := s.users.GetByEmail(ctx, employerEmail)
	if err != nil {
		return types.Job{}, err
	}

	draft.EmployerID = employer.ID
	draft.EmployerEmail = employer.Email
	draft.Status = types.JobPending

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return types.Job{}, err
	}

	s.publish(ctx, events.New(events.EventJobPosted, map[string]string{
		"job_id":   strconv.Itoa(created.ID),
		"employer": employer.Email,
	}))
	return created, nil
}

// UpdateJob overwrites the mutable fields of a job owned by the given
// employer. Any edit reverts the posting to PENDING for re-approval.
func (s *JobService) UpdateJob(ctx context.Context, jobID int, patch types.Job, employerEmail string) (types.Job, error) {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return types.Job{}, err
	}
	if job.EmployerEmail != employerEmail {
		return types.Job{}, ErrUnauthorized
	}
	if err := validateJobFields(patch); err != nil {
		return types.Job{}, err
	}

	job.Title = patch.Title
	job.Description = patch.Description
	job.Location = patch.Location
	job.Salary = patch.Salary
	job.Category = patch.Category
	job.Deadline = patch.Deadline
	job.Status = types.JobPending

	return s.repo.Update(ctx, job)
}

// DeleteJob removes a job owned by the given employer. Applications to the
// job are removed by the storage layer's cascade.
func (s *JobService) DeleteJob(ctx context.Context, jobID int, employerEmail string) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.EmployerEmail != employerEmail {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, jobID)
}

// UpdateJobStatus sets a job's status directly. Admin-only; role
// enforcement happens at the boundary, and unlike employer edits this never
// touches any other field.
func (s *JobService) UpdateJobStatus(ctx context.Context, jobID int, status types.JobStatus) (types.Job, error) {
	if !status.Valid() {
		return types.Job{}, newValidationError("status", "status must be PENDING, APPROVED, or REJECTED")
	}
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return types.Job{}, err
	}
	if err := s.repo.UpdateStatus(ctx, jobID, status); err != nil {
		return types.Job{}, err
	}
	job.Status = status

	s.publish(ctx, events.New(events.EventJobStatusChanged, map[string]string{
		"job_id": strconv.Itoa(job.ID),
		"status": string(status),
	}))
	return job, nil
}

func (s *JobService) GetJobByID(ctx context.Context, id int) (types.Job, error) {
	return s.repo.Get(ctx, id)
}

// GetAllJobs returns every job regardless of status. Admin view.
func (s *JobService) GetAllJobs(ctx context.Context) ([]types.Job, error) {
	return s.repo.List(ctx)
}

// GetJobsByEmployer resolves the employer by email and returns their jobs.
func (s *JobService) GetJobsByEmployer(ctx context.Context, email string) ([]types.Job, error) {
	employer, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEmployer(ctx, employer.ID)
}

// GetAllApprovedJobs returns the student-visible catalog.
func (s *JobService) GetAllApprovedJobs(ctx context.Context) ([]types.Job, error) {
	return s.repo.ListByStatus(ctx, types.JobApproved)
}

// Search filters approved jobs. Exactly one filter dimension applies per
// call, first non-blank wins: keyword, then category, then location; with
// all blank the whole approved catalog is returned.
func (s *JobService) Search(ctx context.Context, keyword, category, location string) ([]types.Job, error) {
	switch {
	case strings.TrimSpace(keyword) != "":
		return s.repo.SearchApproved(ctx, strings.TrimSpace(keyword))
	case strings.TrimSpace(category) != "":
		return s.repo.ListApprovedByCategory(ctx, strings.TrimSpace(category))
	case strings.TrimSpace(location) != "":
		return s.repo.ListApprovedByLocation(ctx, strings.TrimSpace(location))
	default:
		return s.GetAllApprovedJobs(ctx)
	}
}

// AvailableCategories lists the distinct categories across approved jobs.
func (s *JobService) AvailableCategories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

// AvailableLocations lists the distinct locations across approved jobs.
func (s *JobService) AvailableLocations(ctx context.Context) ([]string, error) {
	return s.repo.DistinctLocations(ctx)
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("events: publish %s failed: %v", event.Name, err)
	}
}

func validateJobFields(job types.Job) error {
	if strings.TrimSpace(job.Title) == "" {
		return newValidationError("title", "job title is required")
	}
	if strings.TrimSpace(job.Description) == "" {
		return newValidationError("description", "job description is required")
	}
	if job.Salary != nil && *job.Salary <= 0 {
		return newValidationError("salary", "salary must be positive")
	}
	return nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
