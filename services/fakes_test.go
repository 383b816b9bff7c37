package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"esports-tournament-system/models"
	"esports-tournament-system/repository"
)

// fakeStore is an in-memory repository.Store used to drive the engines
// without a database. Transaction runs the callback against the same
// state; rollback fidelity is not needed because the engines fail before
// writing.
type fakeStore struct {
	users         map[string]models.User
	teams         map[string]models.Team
	tournaments   map[string]models.Tournament
	registrations map[string]models.Registration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]models.User{},
		teams:         map[string]models.Team{},
		tournaments:   map[string]models.Tournament{},
		registrations: map[string]models.Registration{},
	}
}

func (s *fakeStore) Users() repository.UserRepo                 { return &fakeUserRepo{s} }
func (s *fakeStore) Teams() repository.TeamRepo                 { return &fakeTeamRepo{s} }
func (s *fakeStore) Tournaments() repository.TournamentRepo     { return &fakeTournamentRepo{s} }
func (s *fakeStore) Registrations() repository.RegistrationRepo { return &fakeRegistrationRepo{s} }

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// hydrate emulates the GORM preloads the real repositories perform.
func (s *fakeStore) hydrate(reg models.Registration) models.Registration {
	if t, ok := s.tournaments[reg.TournamentID]; ok {
		reg.Tournament = t
	}
	if reg.PlayerID != nil {
		if u, ok := s.users[*reg.PlayerID]; ok {
			reg.Player = &u
		}
	}
	if reg.TeamID != nil {
		if t, ok := s.teams[*reg.TeamID]; ok {
			reg.Team = &t
		}
	}
	return reg
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	for _, u := range r.s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) SetTeam(ctx context.Context, userID string, teamID *string) error {
	u, ok := r.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.TeamID = teamID
	r.s.users[userID] = u
	return nil
}

func (r *fakeUserRepo) ClearTeam(ctx context.Context, teamID string) error {
	for id, u := range r.s.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			u.TeamID = nil
			r.s.users[id] = u
		}
	}
	return nil
}

type fakeTeamRepo struct{ s *fakeStore }

func (r *fakeTeamRepo) hydrate(team models.Team) models.Team {
	if c, ok := r.s.users[team.CaptainID]; ok {
		team.Captain = c
	}
	team.Members = nil
	for _, u := range r.s.users {
		if u.TeamID != nil && *u.TeamID == team.ID {
			team.Members = append(team.Members, u)
		}
	}
	return team
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	for _, t := range r.s.teams {
		teams = append(teams, r.hydrate(t))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id string) (models.Team, error) {
	t, ok := r.s.teams[id]
	if !ok {
		return models.Team{}, repository.ErrNotFound
	}
	return r.hydrate(t), nil
}

func (r *fakeTeamRepo) ExistsByNameOrTag(ctx context.Context, name, tag, excludeID string) (bool, error) {
	for _, t := range r.s.teams {
		if t.ID == excludeID {
			continue
		}
		if (name != "" && t.Name == name) || (tag != "" && t.Tag == tag) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	r.s.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) Updates(ctx context.Context, id string, fields map[string]interface{}) error {
	t, ok := r.s.teams[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		t.Name = v
	}
	if v, ok := fields["tag"].(string); ok {
		t.Tag = v
	}
	r.s.teams[id] = t
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.teams[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.teams, id)
	return nil
}

type fakeTournamentRepo struct{ s *fakeStore }

func (r *fakeTournamentRepo) List(ctx context.Context, filter repository.TournamentFilter) ([]models.Tournament, int64, error) {
	var matched []models.Tournament
	for _, t := range r.s.tournaments {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Format != "" && t.Format != filter.Format {
			continue
		}
		if filter.Game != "" && !strings.Contains(strings.ToLower(t.Game), strings.ToLower(filter.Game)) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartDate.Before(matched[j].StartDate) })

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (models.Tournament, error) {
	t, ok := r.s.tournaments[id]
	if !ok {
		return models.Tournament{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) ListByStatusDue(ctx context.Context, status string, startedBefore time.Time) ([]models.Tournament, error) {
	var due []models.Tournament
	for _, t := range r.s.tournaments {
		if t.Status == status && !t.StartDate.After(startedBefore) {
			due = append(due, t)
		}
	}
	return due, nil
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	r.s.tournaments[tournament.ID] = *tournament
	return nil
}

func (r *fakeTournamentRepo) Updates(ctx context.Context, id string, fields map[string]interface{}) error {
	t, ok := r.s.tournaments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		t.Name = v
	}
	if v, ok := fields["slug"].(string); ok {
		t.Slug = v
	}
	if v, ok := fields["game"].(string); ok {
		t.Game = v
	}
	if v, ok := fields["format"].(string); ok {
		t.Format = v
	}
	if v, ok := fields["max_participants"].(int); ok {
		t.MaxParticipants = v
	}
	if v, ok := fields["prize_pool"].(float64); ok {
		t.PrizePool = v
	}
	if v, ok := fields["start_date"].(time.Time); ok {
		t.StartDate = v
	}
	if v, ok := fields["end_date"].(time.Time); ok {
		t.EndDate = &v
	}
	if v, ok := fields["status"].(string); ok {
		t.Status = v
	}
	if v, ok := fields["banner_url"].(string); ok {
		t.BannerURL = v
	}
	r.s.tournaments[id] = t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.tournaments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tournaments, id)
	return nil
}

type fakeRegistrationRepo struct{ s *fakeStore }

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error) {
	var regs []models.Registration
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID {
			regs = append(regs, r.s.hydrate(reg))
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (r *fakeRegistrationRepo) ListByTournamentAndStatus(ctx context.Context, tournamentID, status string) ([]models.Registration, error) {
	var regs []models.Registration
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID && reg.Status == status {
			regs = append(regs, r.s.hydrate(reg))
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (models.Registration, error) {
	reg, ok := r.s.registrations[id]
	if !ok {
		return models.Registration{}, repository.ErrNotFound
	}
	return r.s.hydrate(reg), nil
}

func (r *fakeRegistrationRepo) FindByTournamentAndPlayer(ctx context.Context, tournamentID, playerID string) (models.Registration, error) {
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID && reg.PlayerID != nil && *reg.PlayerID == playerID {
			return r.s.hydrate(reg), nil
		}
	}
	return models.Registration{}, repository.ErrNotFound
}

func (r *fakeRegistrationRepo) FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID string) (models.Registration, error) {
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID && reg.TeamID != nil && *reg.TeamID == teamID {
			return r.s.hydrate(reg), nil
		}
	}
	return models.Registration{}, repository.ErrNotFound
}

func (r *fakeRegistrationRepo) CountByStatus(ctx context.Context, tournamentID, status string) (int64, error) {
	var count int64
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID && reg.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) StatusCounts(ctx context.Context, tournamentID string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID {
			counts[reg.Status]++
		}
	}
	return counts, nil
}

func (r *fakeRegistrationRepo) TeamHasActiveRegistration(ctx context.Context, teamID string) (bool, error) {
	for _, reg := range r.s.registrations {
		if reg.TeamID == nil || *reg.TeamID != teamID {
			continue
		}
		t, ok := r.s.tournaments[reg.TournamentID]
		if ok && (t.Status == models.TournamentOpen || t.Status == models.TournamentOngoing) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	r.s.registrations[registration.ID] = *registration
	return nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	reg, ok := r.s.registrations[id]
	if !ok {
		return repository.ErrNotFound
	}
	reg.Status = status
	r.s.registrations[id] = reg
	return nil
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.registrations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) DeleteByTournament(ctx context.Context, tournamentID string) error {
	for id, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID {
			delete(r.s.registrations, id)
		}
	}
	return nil
}
