package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vancoder1/CampusJobBoardSystem/internal/auth"
	"github.com/vancoder1/CampusJobBoardSystem/internal/services"
	"github.com/vancoder1/CampusJobBoardSystem/types"
)

// AdminHandler provides moderation and user management endpoints.
type AdminHandler struct {
	jobService  *services.JobService
	userService *services.UserService
}

func NewAdminHandler(jobService *services.JobService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		jobService:  jobService,
		userService: userService,
	}
}

// AdminRouter registers admin routes on the given router. All routes
// require the ADMIN role.
func AdminRouter(
	r chi.Router,
	jobService *services.JobService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewAdminHandler(jobService, userService)

	r.Use(authMiddleware, RequireAction(auth.ActionModerateJob))
	r.Get("/jobs", handler.ListAllJobs)
	r.Post("/jobs/{jobID}/approve", handler.ApproveJob)
	r.Post("/jobs/{jobID}/reject", handler.RejectJob)
	r.Get("/users", handler.ListUsers)
	r.Post("/users/{userID}/activate", handler.ActivateUser)
	r.Post("/users/{userID}/deactivate", handler.DeactivateUser)
}

// ListAllJobs returns every job in every status for moderation.
func (h *AdminHandler) ListAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.GetAllJobs(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// ApproveJob makes a posting visible to students.
func (h *AdminHandler) ApproveJob(w http.ResponseWriter, r *http.Request) {
	h.setJobStatus(w, r, types.JobApproved)
}

// RejectJob declines a posting.
func (h *AdminHandler) RejectJob(w http.ResponseWriter, r *http.Request) {
	h.setJobStatus(w, r, types.JobRejected)
}

func (h *AdminHandler) setJobStatus(w http.ResponseWriter, r *http.Request, status types.JobStatus) {
	id, err := parseIDParam(r, "jobID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobService.UpdateJobStatus(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err, "failed to update job status")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ActivateUser re-enables an account.
func (h *AdminHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, true)
}

// DeactivateUser disables an account; the holder can no longer log in.
func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, false)
}

func (h *AdminHandler) setUserStatus(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if active {
		err = h.userService.ActivateUser(r.Context(), id)
	} else {
		err = h.userService.DeactivateUser(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, err, "failed to update user status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
