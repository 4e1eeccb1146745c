package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vancoder1/CampusJobBoardSystem/internal/auth"
	"github.com/vancoder1/CampusJobBoardSystem/internal/services"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

const (
	maxResumeMemory = 10 << 20
	maxResumeBytes  = 5 << 20
	formFieldResume = "resume"
)

// StudentHandler provides the student-facing catalog and application
// endpoints.
type StudentHandler struct {
	jobService         *services.JobService
	applicationService *services.ApplicationService
}

func NewStudentHandler(jobService *services.JobService, applicationService *services.ApplicationService) *StudentHandler {
	return &StudentHandler{
		jobService:         jobService,
		applicationService: applicationService,
	}
}

// StudentRouter registers student routes on the given router. All routes
// require the STUDENT role.
func StudentRouter(
	r chi.Router,
	jobService *services.JobService,
	applicationService *services.ApplicationService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewStudentHandler(jobService, applicationService)

	r.Use(authMiddleware, RequireAction(auth.ActionApplyForJob))
	r.Get("/jobs", handler.ListJobs)
	r.Get("/jobs/{jobID}", handler.GetJob)
	r.Post("/jobs/{jobID}/apply", handler.Apply)
	r.Get("/applications", handler.MyApplications)
}

// CatalogResponse is the student job listing payload, including the
// distinct values used to populate filter controls.
type CatalogResponse struct {
	Jobs       []types.Job `json:"jobs"`
	Categories []string    `json:"categories"`
	Locations  []string    `json:"locations"`
}

// ListJobs returns approved jobs, optionally filtered. Exactly one filter
// dimension applies per request: keyword beats category beats location.
func (h *StudentHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	jobs, err := h.jobService.Search(
		r.Context(),
		query.Get("keyword"),
		query.Get("category"),
		query.Get("location"),
	)
	if err != nil {
		writeServiceError(w, err, "failed to list jobs")
		return
	}

	categories, err := h.jobService.AvailableCategories(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list jobs")
		return
	}
	locations, err := h.jobService.AvailableLocations(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Jobs:       jobs,
		Categories: categories,
		Locations:  locations,
	})
}

// GetJob returns a single job's details. Jobs that are not APPROVED read
// as not found even when the id is valid, so guessing ids reveals nothing.
func (h *StudentHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "jobID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobService.GetJobByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch job")
		return
	}
	if job.Status != types.JobApproved {
		writeError(w, http.StatusNotFound, "job is not available")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Apply submits an application to a job, with an optional resume
// attachment. A second application to the same job fails with 409.
func (h *StudentHandler) Apply(w http.ResponseWriter, r *http.Request) {
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

	resume, err := parseResumeUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	application, err := h.applicationService.Apply(r.Context(), id, principal.Email, resume)
	if err != nil {
		writeServiceError(w, err, "failed to apply")
		return
	}

	writeJSON(w, http.StatusCreated, application)
}

// MyApplications returns the caller's applications with job data joined.
func (h *StudentHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	applications, err := h.applicationService.GetStudentApplications(r.Context(), principal.Email)
	if err != nil {
		writeServiceError(w, err, "failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

// parseResumeUpload extracts the optional resume file from a multipart
// request. A non-multipart request simply has no resume.
func parseResumeUpload(r *http.Request) (*services.ResumeUpload, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, nil
	}

	if err := r.ParseMultipartForm(maxResumeMemory); err != nil {
		return nil, errors.New("invalid multipart form")
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[formFieldResume]) == 0 {
		return nil, nil
	}
	if len(r.MultipartForm.File[formFieldResume]) > 1 {
		return nil, errors.New("only one resume file is allowed")
	}

	fileHeader := r.MultipartForm.File[formFieldResume][0]
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("failed to read resume file")
	}
	defer file.Close()

	limited := io.LimitReader(file, maxResumeBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read resume file")
	}
	if int64(len(data)) > maxResumeBytes {
		return nil, errors.New("resume file too large")
	}

	return &services.ResumeUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
