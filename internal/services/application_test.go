package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancoder1/CampusJobBoardSystem/internal/store"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

func newApplicationFixture(t *testing.T) (*ApplicationService, *fakeApplicationRepo, *fakeJobRepo, *fakeUserRepo) {
	t.Helper()
	apps := newFakeApplicationRepo()
	jobs := newFakeJobRepo()
	users := newFakeUserRepo()
	return NewApplicationService(apps, jobs, users, nil, nil), apps, jobs, users
}

func addStudent(users *fakeUserRepo, email string) types.User {
	return users.add(types.User{
		FullName: "Student",
		Email:    email,
		Role:     types.RoleStudent,
		Status:   types.UserActive,
	})
}

func addApprovedJob(jobs *fakeJobRepo, employer types.User, title string) types.Job {
	return jobs.add(types.Job{
		Title:         title,
		Description:   "desc",
		Status:        types.JobApproved,
		EmployerID:    employer.ID,
		EmployerEmail: employer.Email,
	})
}

func TestApplyCreatesSubmittedApplication(t *testing.T) {
	svc, _, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	employer := addEmployer(users, "acme@example.com")
	job := addApprovedJob(jobs, employer, "Tutor")

	created, err := svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.NoError(t, err)

	assert.Equal(t, types.ApplicationSubmitted, created.Status)
	assert.Equal(t, job.ID, created.JobID)
	assert.Equal(t, student.ID, created.StudentID)
	assert.NotZero(t, created.ID)
}

func TestApplyTwiceFails(t *testing.T) {
	svc, apps, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	employer := addEmployer(users, "acme@example.com")
	job := addApprovedJob(jobs, employer, "Tutor")

	_, err := svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.ErrorIs(t, err, ErrDuplicateApplication)

	listed, err := apps.ListByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestApplyStorageDuplicateMapsToSameError(t *testing.T) {
	svc, apps, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	employer := addEmployer(users, "acme@example.com")
	job := addApprovedJob(jobs, employer, "Tutor")

	// Insert behind the service's back so the pre-check misses it and the
	// unique constraint fires instead.
	_, err := apps.Create(context.Background(), types.JobApplication{
		Status:    types.ApplicationSubmitted,
		JobID:     job.ID,
		StudentID: student.ID,
	})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestApplyToDifferentJobsSucceeds(t *testing.T) {
	svc, _, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	employer := addEmployer(users, "acme@example.com")
	first := addApprovedJob(jobs, employer, "Tutor")
	second := addApprovedJob(jobs, employer, "Barista")

	_, err := svc.Apply(context.Background(), first.ID, student.Email, nil)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), second.ID, student.Email, nil)
	require.NoError(t, err)

	mine, err := svc.GetStudentApplications(context.Background(), student.Email)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestApplyUnknownJob(t *testing.T) {
	svc, _, _, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")

	_, err := svc.Apply(context.Background(), 99, student.Email, nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyUnknownStudent(t *testing.T) {
	svc, _, jobs, users := newApplicationFixture(t)
	employer := addEmployer(users, "acme@example.com")
	job := addApprovedJob(jobs, employer, "Tutor")

	_, err := svc.Apply(context.Background(), job.ID, "ghost@example.com", nil)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOpenResumeChecksOwnership(t *testing.T) {
	svc, apps, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	owner := addEmployer(users, "owner@example.com")
	addEmployer(users, "intruder@example.com")
	job := addApprovedJob(jobs, owner, "Tutor")

	created, err := svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.NoError(t, err)
	require.NoError(t, apps.SetResumeKey(context.Background(), created.ID, "resumes/1/cv.pdf"))

	_, err = svc.OpenResume(context.Background(), created.ID, "intruder@example.com")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestOpenResumeWithoutAttachment(t *testing.T) {
	svc, _, jobs, users := newApplicationFixture(t)
	student := addStudent(users, "student@example.com")
	owner := addEmployer(users, "owner@example.com")
	job := addApprovedJob(jobs, owner, "Tutor")

	created, err := svc.Apply(context.Background(), job.ID, student.Email, nil)
	require.NoError(t, err)

	_, err = svc.OpenResume(context.Background(), created.ID, owner.Email)
	require.ErrorIs(t, err, store.ErrNotFound)
}
