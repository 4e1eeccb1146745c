package types

import "time"

// JobStatus is the approval state of a job posting.
// Jobs must be approved by an admin before students can see them.
type JobStatus string

const (
	// JobPending is awaiting admin review. Every new posting and every
	// employer edit lands here.
	JobPending JobStatus = "PENDING"
	// JobApproved postings are visible to students.
	JobApproved JobStatus = "APPROVED"
	// JobRejected postings were declined by an admin.
	JobRejected JobStatus = "REJECTED"
)

// Valid reports whether s is one of the known job statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobApproved, JobRejected:
		return true
	default:
		return false
	}
}

// Job represents a job posting created by an employer.
type Job struct {
	// ID is the unique identifier of the job.
	ID int `json:"id" db:"job_id"`

	// Title is the human-readable name of the position.
	Title string `json:"title" db:"title"`

	// Description contains the full posting text.
	Description string `json:"description" db:"description"`

	// Location is where the position is based. Optional.
	Location string `json:"location,omitempty" db:"location"`

	// Salary is the offered pay. Optional; must be positive when set.
	Salary *float64 `json:"salary,omitempty" db:"salary"`

	// Category is a free-form label used for filtering. Optional.
	Category string `json:"category,omitempty" db:"category"`

	// Deadline is the last day applications are accepted. Optional; must
	// be today or later at creation time.
	Deadline *time.Time `json:"deadline,omitempty" db:"deadline"`

	// Status is the approval state of the posting.
	Status JobStatus `json:"status" db:"status"`

	// EmployerID references the owning employer account.
	EmployerID int `json:"employer_id" db:"employer_id"`

	// EmployerEmail is the owning employer's email, joined in on reads.
	// Used for ownership checks; never written directly.
	EmployerEmail string `json:"employer_email,omitempty" db:"employer_email"`

	// CreatedAt is the timestamp at which the posting was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
