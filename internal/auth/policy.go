// Package auth holds the role and ownership policy for the job board.
//
// The policy is a pure function over an explicit principal; nothing in here
// touches ambient state, the database, or the request. Handlers resolve the
// principal once per request and consult CanAccess before dispatching to the
// services.
package auth

import "github.com/vancoder1/CampusJobBoardSystem/types"

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID    int
	Email string
	Role  types.Role
}

// Action names an operation gated by the policy.
type Action string

const (
	ActionPostJob        Action = "job.post"
	ActionEditJob        Action = "job.edit"
	ActionDeleteJob      Action = "job.delete"
	ActionViewApplicants Action = "job.view_applicants"
	ActionModerateJob    Action = "job.moderate"
	ActionViewAllJobs    Action = "job.view_all"
	ActionApplyForJob    Action = "job.apply"
	ActionViewOwnApplied Action = "application.view_own"
	ActionManageUsers    Action = "user.manage"
)

// requiredRole is the route-level role gate: a caller whose role does not
// match is denied before any resource is loaded.
var requiredRole = map[Action]types.Role{
	ActionPostJob:        types.RoleEmployer,
	ActionEditJob:        types.RoleEmployer,
	ActionDeleteJob:      types.RoleEmployer,
	ActionViewApplicants: types.RoleEmployer,
	ActionModerateJob:    types.RoleAdmin,
	ActionViewAllJobs:    types.RoleAdmin,
	ActionApplyForJob:    types.RoleStudent,
	ActionViewOwnApplied: types.RoleStudent,
	ActionManageUsers:    types.RoleAdmin,
}

// ownershipGated actions additionally require the target job to belong to
// the acting employer.
var ownershipGated = map[Action]bool{
	ActionEditJob:        true,
	ActionDeleteJob:      true,
	ActionViewApplicants: true,
}

// CanAccess reports whether actor may perform action, optionally against a
// specific job. Pass a nil job for actions that are not resource-scoped.
func CanAccess(actor Principal, action Action, job *types.Job) bool {
	role, known := requiredRole[action]
	if !known || actor.Role != role {
		return false
	}
	if ownershipGated[action] {
		if job == nil {
			return false
		}
		return job.EmployerEmail == actor.Email
	}
	return true
}
