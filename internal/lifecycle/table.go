package lifecycle

import (
	"github.com/samber/lo"
	"github.com/talentflow/pipeline/internal/domain/models"
)

type edge struct {
	to    models.Status
	roles []models.Role
}

// transitionTable is the single source of truth for every legal move in
// the pipeline. Every surface that shows status actions derives them
// from here via NextStates, so the set of valid actions cannot drift
// between views. Statuses absent from the map are terminal.
var transitionTable = map[models.Status][]edge{
	models.StatusApplied: {
		{to: models.StatusInterviewing, roles: []models.Role{models.RoleRecruiter}},
		{to: models.StatusRejected, roles: []models.Role{models.RoleRecruiter}},
		{to: models.StatusWithdrawn, roles: []models.Role{models.RoleCandidate}},
	},
	models.StatusInterviewing: {
		{to: models.StatusUnderReview, roles: []models.Role{models.RoleRecruiter}},
		{to: models.StatusWithdrawn, roles: []models.Role{models.RoleCandidate}},
	},
	models.StatusUnderReview: {
		{to: models.StatusOfferExtended, roles: []models.Role{models.RoleRecruiter}},
		{to: models.StatusRejected, roles: []models.Role{models.RoleRecruiter}},
	},
	models.StatusOfferExtended: {
		{to: models.StatusAccepted, roles: []models.Role{models.RoleCandidate}},
		// rejection here covers both the recruiter revoking and the
		// candidate declining the offer
		{to: models.StatusRejected, roles: []models.Role{models.RoleRecruiter, models.RoleCandidate}},
	},
	models.StatusAccepted: {
		{to: models.StatusHired, roles: []models.Role{models.RoleRecruiter}},
	},
}

// Allowed reports whether (from, to) is an edge the given role may trigger.
func Allowed(from, to models.Status, role models.Role) bool {
	for _, e := range transitionTable[from] {
		if e.to == to && lo.Contains(e.roles, role) {
			return true
		}
	}
	return false
}

// NextStates returns the statuses the role can move an application to
// from the given status. Empty for terminal statuses.
func NextStates(from models.Status, role models.Role) []models.Status {
	var next []models.Status
	for _, e := range transitionTable[from] {
		if lo.Contains(e.roles, role) {
			next = append(next, e.to)
		}
	}
	return next
}

// Terminal reports whether a status has no outbound edges for any role.
func Terminal(status models.Status) bool {
	return len(transitionTable[status]) == 0
}
