// Package intake imports service orders from the front-office intake feed
// and keeps the job collection up to date. Jobs are created externally;
// this poller is the external creation path.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"workshop-scheduler-backend/config"
	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/store"
)

// Service polls the intake feed on a fixed interval.
type Service struct {
	cfg    *config.Config
	store  store.Store
	client *http.Client
}

// NewService creates a new intake poller.
func NewService(cfg *config.Config, s store.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: s,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Run starts the polling loop. It returns when ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Intake.Enabled {
		log.Println("Intake poller is disabled. Not starting.")
		return
	}
	log.Println("Starting intake poller...")

	s.SyncOnce(ctx)

	timer := time.NewTimer(s.cfg.Intake.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Intake poller shutting down.")
			return
		case <-timer.C:
			s.SyncOnce(ctx)
			timer.Reset(s.cfg.Intake.Interval)
		}
	}
}

// SyncOnce performs a single intake round: fetch the feed and upsert the
// orders it carries. New orders arrive as pending jobs with an empty
// assignee set; orders already known keep their assignee set and bay link,
// only the descriptive fields and an externally driven status change
// (in_progress, completed) are taken over.
func (s *Service) SyncOnce(ctx context.Context) {
	orders, err := s.fetchOrders(ctx)
	if err != nil {
		log.Printf("Error fetching intake feed: %v", err)
		return
	}
	if len(orders) == 0 {
		return
	}

	var created, updated int
	for _, o := range orders {
		job, err := s.store.Job(ctx, o.ID)
		if err != nil {
			log.Printf("Error loading job %s during intake: %v", o.ID, err)
			continue
		}
		if job == nil {
			job = &model.Job{
				ID:                o.ID,
				Status:            model.JobPending,
				AssignedEmployees: []string{},
			}
			created++
		} else {
			updated++
		}
		job.Vehicle = o.Vehicle
		job.Customer = o.Customer
		job.Service = o.Service
		job.Priority = o.Priority
		// The engine owns pending<->assigned; the feed only moves jobs
		// into the externally driven states.
		if o.Status == model.JobInProgress || o.Status == model.JobCompleted {
			job.Status = o.Status
		}
		if err := s.store.SaveJob(ctx, job); err != nil {
			log.Printf("Error saving job %s during intake: %v", o.ID, err)
		}
	}
	log.Printf("Intake cycle finished: %d new, %d refreshed", created, updated)
}

func (s *Service) fetchOrders(ctx context.Context) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Intake.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.cfg.Intake.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var feed Feed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intake feed: %w", err)
	}
	return feed.Orders, nil
}
