package services

import (
	"context"
	"log"
	"time"

	"esports-tournament-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleSweep runs a background job that promotes OPEN tournaments
// whose start date has passed to ONGOING.
func (s *TournamentService) StartLifecycleSweep() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Sweep] scheduler init failed: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			s.sweepDueTournaments(context.Background())
		}),
	)
	if err != nil {
		log.Printf("[Sweep] job registration failed: %v", err)
	}
}

// sweepDueTournaments promotes each OPEN tournament past its start date to
// ONGOING, provided it holds a viable field of at least 2 confirmed
// entrants. Tournaments short of that are left untouched for the organizer
// to resolve.
func (s *TournamentService) sweepDueTournaments(ctx context.Context) {
	due, err := s.store.Tournaments().ListByStatusDue(ctx, models.TournamentOpen, s.now())
	if err != nil {
		log.Printf("[Sweep] listing due tournaments: %v", err)
		return
	}
	for _, t := range due {
		confirmed, err := s.store.Registrations().CountByStatus(ctx, t.ID, models.RegistrationConfirmed)
		if err != nil {
			log.Printf("[Sweep] counting confirmed for %s: %v", t.ID, err)
			continue
		}
		if confirmed < 2 {
			log.Printf("[Sweep] tournament %s past start with %d confirmed, leaving OPEN", t.ID, confirmed)
			continue
		}
		if err := s.store.Tournaments().Updates(ctx, t.ID, map[string]interface{}{"status": models.TournamentOngoing}); err != nil {
			log.Printf("[Sweep] failed to start tournament %s: %v", t.ID, err)
			continue
		}
		log.Printf("[Sweep] auto-started tournament: %s", t.Name)
	}
}
