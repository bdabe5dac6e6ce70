package engine

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/store"
)

// ReadyJobs returns jobs that are fully staffed (non-empty assignee set)
// but not yet linked to a bay.
func (e *Engine) ReadyJobs(ctx context.Context) ([]model.Job, error) {
	return e.store.JobsWhere(ctx, func(j model.Job) bool {
		staffed := len(j.AssignedEmployees) > 0
		if !staffed && j.LegacyAssignee != nil && *j.LegacyAssignee != "" {
			staffed = true
		}
		return staffed && j.BayID == nil
	})
}

// AvailableBays returns bays currently open for pairing.
func (e *Engine) AvailableBays(ctx context.Context) ([]model.Bay, error) {
	return e.store.BaysWhere(ctx, func(b model.Bay) bool {
		return b.Status == model.BayAvailable
	})
}

// AssignJobToBay links a ready job to an available bay. First-fit only;
// the operator chooses the pairing, nothing is optimized. The job's status
// is left alone (it was already assigned when it became ready).
func (e *Engine) AssignJobToBay(ctx context.Context, jobID, bayID string) error {
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return notFound("job", jobID)
	}
	bay, err := e.store.Bay(ctx, bayID)
	if err != nil {
		return err
	}
	if bay == nil {
		return notFound("bay", bayID)
	}
	if bay.Status != model.BayAvailable {
		return fmt.Errorf("bay %s is %s: %w", bayID, bay.Status, ErrBayUnavailable)
	}

	job.BayID = &bayID
	bay.Status = model.BayOccupied
	bay.CurrentJobID = &jobID

	err = e.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Save(bay).Error
	})
	if err != nil {
		return fmt.Errorf("assign job %s to bay %s: %w: %w", jobID, bayID, store.ErrStore, err)
	}
	return nil
}

// ReleaseBay clears a bay's job link and, unless the bay is down for
// maintenance, makes it available again. The job keeps its assignee set
// and status; only the bay link is dropped.
func (e *Engine) ReleaseBay(ctx context.Context, bayID string) error {
	bay, err := e.store.Bay(ctx, bayID)
	if err != nil {
		return err
	}
	if bay == nil {
		return notFound("bay", bayID)
	}

	var job *model.Job
	if bay.CurrentJobID != nil {
		job, err = e.store.Job(ctx, *bay.CurrentJobID)
		if err != nil {
			return err
		}
	}

	bay.CurrentJobID = nil
	if bay.Status == model.BayOccupied {
		bay.Status = model.BayAvailable
	}
	if job != nil {
		job.BayID = nil
	}

	err = e.store.Transaction(ctx, func(tx *gorm.DB) error {
		if job != nil {
			if err := tx.Save(job).Error; err != nil {
				return err
			}
		}
		return tx.Save(bay).Error
	})
	if err != nil {
		return fmt.Errorf("release bay %s: %w: %w", bayID, store.ErrStore, err)
	}
	return nil
}
