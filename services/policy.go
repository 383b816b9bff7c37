package services

import (
	"esports-tournament-system/models"
)

// Authorization policy: pure predicates shared by the engines. Callers
// surface a denial as a Forbidden error; the policy only answers yes/no.

// CanManageTournament is true for admins and the owning organizer.
func CanManageTournament(p models.Principal, t models.Tournament) bool {
	return p.Role == models.RoleAdmin || p.ID == t.OrganizerID
}

// CanCreateTeam is true for players only.
func CanCreateTeam(p models.Principal) bool {
	return p.Role == models.RolePlayer
}

// CanManageTeam is true for the team captain.
func CanManageTeam(p models.Principal, t models.Team) bool {
	return p.ID == t.CaptainID
}

// IsRegistrationOwner is true for the registered player, or for the
// captain of the registered team.
func IsRegistrationOwner(p models.Principal, r models.Registration) bool {
	if r.PlayerID != nil && *r.PlayerID == p.ID {
		return true
	}
	return r.Team != nil && r.Team.CaptainID == p.ID
}

// CanCompleteTournament is true for admins only: an organizer must not be
// able to unilaterally close out prize distribution.
func CanCompleteTournament(p models.Principal) bool {
	return p.Role == models.RoleAdmin
}
