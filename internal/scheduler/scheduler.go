package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

// probeTimeout bounds one round of upstream probes.
const probeTimeout = 30 * time.Second

// Scheduler periodically probes the upstream emissions services.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *emissions.Service
	interval  time.Duration
}

// New creates a new Scheduler. A non-positive interval disables probing.
func New(interval time.Duration, service *emissions.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: upstream probing disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.runProbes)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runProbes() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := s.service.ProbeAll(ctx); err != nil {
		log.Printf("scheduler: probe run failed: %v", err)
		return
	}
	log.Println("scheduler: completed upstream probe run")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// IsRunning reports whether probe jobs are being scheduled.
func (s *Scheduler) IsRunning() bool {
	return s.scheduler != nil && s.scheduler.IsRunning()
}
