package types

import "time"

// ApplicationStatus tracks the state of a student's application to a job.
type ApplicationStatus string

const (
	// ApplicationSubmitted is the initial state of every application.
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	// ApplicationAccepted means the employer accepted the applicant.
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	// ApplicationRejected means the employer declined the applicant.
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// JobApplication links a student to a job they applied for.
// A student can apply at most once per job; the (job, student) pair is
// unique and the storage layer enforces it with a constraint.
type JobApplication struct {
	// ID is the unique identifier of the application.
	ID int `json:"id" db:"application_id"`

	// Status is the review state of the application.
	Status ApplicationStatus `json:"status" db:"status"`

	// JobID references the job applied to.
	JobID int `json:"job_id" db:"job_id"`

	// StudentID references the applying student.
	StudentID int `json:"student_id" db:"student_id"`

	// ResumeKey is the object-storage key of the attached resume, if any.
	ResumeKey string `json:"resume_key,omitempty" db:"resume_key"`

	// AppliedAt is the timestamp the application was submitted.
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`

	// Job carries the joined job data on student-facing reads, so a
	// listing does not need a lookup per row. Nil elsewhere.
	Job *Job `json:"job,omitempty" db:"-"`
}
