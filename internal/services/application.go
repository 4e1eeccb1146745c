package services

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/vancoder1/CampusJobBoardSystem/internal/events"
	"github.com/vancoder1/CampusJobBoardSystem/internal/storage"
	"github.com/vancoder1/CampusJobBoardSystem/internal/store"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app types.JobApplication) (types.JobApplication, error)
	GetByID(ctx context.Context, id int) (types.JobApplication, error)
	GetByJobAndStudent(ctx context.Context, jobID, studentID int) (types.JobApplication, error)
	ListByJob(ctx context.Context, jobID int) ([]types.JobApplication, error)
	ListByStudent(ctx context.Context, studentID int) ([]types.JobApplication, error)
	SetResumeKey(ctx context.Context, id int, key string) error
}

// ResumeUpload is an optional resume file attached to an application.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationService handles admission of student applications to jobs,
// including the one-application-per-job invariant.
type ApplicationService struct {
	repo      ApplicationRepository
	jobs      JobRepository
	users     UserRepository
	resumes   *storage.ResumeStore
	publisher events.Publisher
}

func NewApplicationService(
	repo ApplicationRepository,
	jobs JobRepository,
	users UserRepository,
	resumes *storage.ResumeStore,
	publisher events.Publisher,
) *ApplicationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ApplicationService{
		repo:      repo,
		jobs:      jobs,
		users:     users,
		resumes:   resumes,
		publisher: publisher,
	}
}

// Apply admits a student's application to a job. The check-then-insert here
// is not atomic against a concurrent identical request; the storage layer's
// unique constraint is the authoritative guard, and its violation maps to
// the same ErrDuplicateApplication as the pre-check.
func (s *ApplicationService) Apply(ctx context.Context, jobID int, studentEmail string, resume *ResumeUpload) (types.JobApplication, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		return types.JobApplication{}, err
	}

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return types.JobApplication{}, err
	}

	if _, err := s.repo.GetByJobAndStudent(ctx, jobID, student.ID); err == nil {
		return types.JobApplication{}, ErrDuplicateApplication
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.JobApplication{}, err
	}

	created, err := s.repo.Create(ctx, types.JobApplication{
		Status:    types.ApplicationSubmitted,
		JobID:     job.ID,
		StudentID: student.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.JobApplication{}, ErrDuplicateApplication
		}
		return types.JobApplication{}, err
	}

	if resume != nil && s.resumes != nil {
		key, err := s.resumes.Save(ctx, created.ID, resume.Filename, resume.ContentType, resume.Data)
		if err != nil {
			log.Printf("storage: saving resume for application %d failed: %v", created.ID, err)
		} else if err := s.repo.SetResumeKey(ctx, created.ID, key); err != nil {
			log.Printf("store: recording resume key for application %d failed: %v", created.ID, err)
		} else {
			created.ResumeKey = key
		}
	}

	s.publish(ctx, events.New(events.EventApplicationSubmitted, map[string]string{
		"application_id": strconv.Itoa(created.ID),
		"job_id":         strconv.Itoa(job.ID),
		"student":        student.Email,
	}))
	return created, nil
}

// GetApplicationsForJob lists applications to a job. No ownership filtering
// happens here; the caller must have already verified that the job belongs
// to the requesting employer.
func (s *ApplicationService) GetApplicationsForJob(ctx context.Context, jobID int) ([]types.JobApplication, error) {
	return s.repo.ListByJob(ctx, jobID)
}

// GetStudentApplications resolves the student by email and returns their
// applications with job data joined in.
func (s *ApplicationService) GetStudentApplications(ctx context.Context, studentEmail string) ([]types.JobApplication, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStudent(ctx, student.ID)
}

// OpenResume opens the resume attached to an application, for the employer
// owning the job applied to. A missing attachment reads the same as a
// missing application.
func (s *ApplicationService) OpenResume(ctx context.Context, applicationID int, employerEmail string) (io.ReadCloser, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerEmail != employerEmail {
		return nil, ErrUnauthorized
	}
	if s.resumes == nil || app.ResumeKey == "" {
		return nil, store.ErrNotFound
	}
	return s.resumes.Open(ctx, app.ResumeKey)
}

func (s *ApplicationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("events: publish %s failed: %v", event.Name, err)
	}
}
