package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vancoder1/CampusJobBoardSystem/internal/auth"
	"github.com/vancoder1/CampusJobBoardSystem/internal/services"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// EmployerHandler provides job posting management endpoints.
type EmployerHandler struct {
	jobService         *services.JobService
	applicationService *services.ApplicationService
}

func NewEmployerHandler(jobService *services.JobService, applicationService *services.ApplicationService) *EmployerHandler {
	return &EmployerHandler{
		jobService:         jobService,
		applicationService: applicationService,
	}
}

// EmployerRouter registers employer routes on the given router. All routes
// require the EMPLOYER role; per-job routes additionally require
// ownership.
func EmployerRouter(
	r chi.Router,
	jobService *services.JobService,
	applicationService *services.ApplicationService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewEmployerHandler(jobService, applicationService)

	r.Use(authMiddleware, RequireAction(auth.ActionPostJob))
	r.Get("/jobs", handler.ListOwnJobs)
	r.Post("/jobs", handler.CreateJob)
	r.Route("/jobs/{jobID}", func(r chi.Router) {
		r.Put("/", handler.UpdateJob)
		r.Delete("/", handler.DeleteJob)
		r.Get("/applications", handler.ListApplicants)
	})
	r.Get("/applications/{applicationID}/resume", handler.DownloadResume)
}

// JobUpsertRequest is the payload for creating or updating a job posting.
type JobUpsertRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Salary      *float64   `json:"salary"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline"`
}

func (req JobUpsertRequest) toJob() types.Job {
	return types.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Category:    req.Category,
		Deadline:    req.Deadline,
	}
}

// ListOwnJobs returns the caller's postings in every status.
func (h *EmployerHandler) ListOwnJobs(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobs, err := h.jobService.GetJobsByEmployer(r.Context(), principal.Email)
	if err != nil {
		writeServiceError(w, err, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// CreateJob posts a new job. The posting starts PENDING and stays hidden
// from students until an admin approves it.
func (h *EmployerHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req JobUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.jobService.PostJob(r.Context(), req.toJob(), principal.Email)
	if err != nil {
		writeServiceError(w, err, "failed to create job")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateJob edits one of the caller's postings. The edit reverts the
// posting to PENDING for re-approval.
func (h *EmployerHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "jobID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req JobUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.jobService.UpdateJob(r.Context(), id, req.toJob(), principal.Email)
	if err != nil {
		writeServiceError(w, err, "failed to update job")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteJob removes one of the caller's postings along with its
// applications.
func (h *EmployerHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "jobID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.jobService.DeleteJob(r.Context(), id, principal.Email); err != nil {
		writeServiceError(w, err, "failed to delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListApplicants returns the applications to one of the caller's jobs.
// The admission service does not filter by owner, so ownership is checked
// here before the listing is fetched.
func (h *EmployerHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "jobID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	job, err := h.jobService.GetJobByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch job")
		return
	}
	if !auth.CanAccess(principal, auth.ActionViewApplicants, &job) {
		writeError(w, http.StatusForbidden, "you do not have access to this resource")
		return
	}

	applications, err := h.applicationService.GetApplicationsForJob(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

// DownloadResume streams the resume attached to an application for a job
// the caller owns.
func (h *EmployerHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "applicationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reader, err := h.applicationService.OpenResume(r.Context(), id, principal.Email)
	if err != nil {
		writeServiceError(w, err, "failed to fetch resume")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, reader)
}
