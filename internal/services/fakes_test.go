package services

import (
	"context"
	"sort"
	"strings"

	"github.com/vancoder1/CampusJobBoardSystem/internal/store"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]types.User{}}
}

func (r *fakeUserRepo) add(user types.User) types.User {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	return r.add(user), nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]types.User, error) {
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	users := make([]types.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id int, status types.UserStatus) error {
	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Status = status
	r.users[id] = user
	return nil
}

type fakeJobRepo struct {
	nextID int
	jobs   map[int]types.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1, jobs: map[int]types.Job{}}
}

func (r *fakeJobRepo) add(job types.Job) types.Job {
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = job
	return job
}

func (r *fakeJobRepo) Get(_ context.Context, id int) (types.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return types.Job{}, store.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) Create(_ context.Context, job types.Job) (types.Job, error) {
	return r.add(job), nil
}

func (r *fakeJobRepo) Update(_ context.Context, job types.Job) (types.Job, error) {
	if _, ok := r.jobs[job.ID]; !ok {
		return types.Job{}, store.ErrNotFound
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id int, status types.JobStatus) error {
	job, ok := r.jobs[id]
	if !ok {
		return store.ErrNotFound
	}
	job.Status = status
	r.jobs[id] = job
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) List(_ context.Context) ([]types.Job, error) {
	return r.filter(func(types.Job) bool { return true }), nil
}

func (r *fakeJobRepo) ListByStatus(_ context.Context, status types.JobStatus) ([]types.Job, error) {
	return r.filter(func(job types.Job) bool { return job.Status == status }), nil
}

func (r *fakeJobRepo) ListByEmployer(_ context.Context, employerID int) ([]types.Job, error) {
	return r.filter(func(job types.Job) bool { return job.EmployerID == employerID }), nil
}

func (r *fakeJobRepo) SearchApproved(_ context.Context, keyword string) ([]types.Job, error) {
	needle := strings.ToLower(keyword)
	return r.filter(func(job types.Job) bool {
		if job.Status != types.JobApproved {
			return false
		}
		haystack := strings.ToLower(job.Title + " " + job.Description + " " + job.Location + " " + job.Category)
		return strings.Contains(haystack, needle)
	}), nil
}

func (r *fakeJobRepo) ListApprovedByCategory(_ context.Context, category string) ([]types.Job, error) {
	return r.filter(func(job types.Job) bool {
		return job.Status == types.JobApproved && strings.EqualFold(job.Category, category)
	}), nil
}

func (r *fakeJobRepo) ListApprovedByLocation(_ context.Context, location string) ([]types.Job, error) {
	needle := strings.ToLower(location)
	return r.filter(func(job types.Job) bool {
		return job.Status == types.JobApproved && strings.Contains(strings.ToLower(job.Location), needle)
	}), nil
}

func (r *fakeJobRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return r.distinct(func(job types.Job) string { return job.Category }), nil
}

func (r *fakeJobRepo) DistinctLocations(_ context.Context) ([]string, error) {
	return r.distinct(func(job types.Job) string { return job.Location }), nil
}

func (r *fakeJobRepo) filter(keep func(types.Job) bool) []types.Job {
	ids := make([]int, 0, len(r.jobs))
	for id := range r.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	jobs := make([]types.Job, 0, len(ids))
	for _, id := range ids {
		if keep(r.jobs[id]) {
			jobs = append(jobs, r.jobs[id])
		}
	}
	return jobs
}

func (r *fakeJobRepo) distinct(field func(types.Job) string) []string {
	seen := map[string]bool{}
	for _, job := range r.jobs {
		value := field(job)
		if job.Status == types.JobApproved && value != "" {
			seen[value] = true
		}
	}
	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

type fakeApplicationRepo struct {
	nextID int
	apps   map[int]types.JobApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, apps: map[int]types.JobApplication{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app types.JobApplication) (types.JobApplication, error) {
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.StudentID == app.StudentID {
			return types.JobApplication{}, store.ErrDuplicate
		}
	}
	app.ID = r.nextID
	r.nextID++
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id int) (types.JobApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return types.JobApplication{}, store.ErrNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) GetByJobAndStudent(_ context.Context, jobID, studentID int) (types.JobApplication, error) {
	for _, app := range r.apps {
		if app.JobID == jobID && app.StudentID == studentID {
			return app, nil
		}
	}
	return types.JobApplication{}, store.ErrNotFound
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID int) ([]types.JobApplication, error) {
	return r.filter(func(app types.JobApplication) bool { return app.JobID == jobID }), nil
}

func (r *fakeApplicationRepo) ListByStudent(_ context.Context, studentID int) ([]types.JobApplication, error) {
	return r.filter(func(app types.JobApplication) bool { return app.StudentID == studentID }), nil
}

func (r *fakeApplicationRepo) SetResumeKey(_ context.Context, id int, key string) error {
	app, ok := r.apps[id]
	if !ok {
		return store.ErrNotFound
	}
	app.ResumeKey = key
	r.apps[id] = app
	return nil
}

func (r *fakeApplicationRepo) filter(keep func(types.JobApplication) bool) []types.JobApplication {
	ids := make([]int, 0, len(r.apps))
	for id := range r.apps {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	apps := make([]types.JobApplication, 0, len(ids))
	for _, id := range ids {
		if keep(r.apps[id]) {
			apps = append(apps, r.apps[id])
		}
	}
	return apps
}
