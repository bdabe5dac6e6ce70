// Package engine implements the workshop assignment core: binding
// employees to jobs across hourly slots, the staged-edit session protocol,
// and bay pairing. Every mutating operation validates fully before writing
// and applies its writes in one store transaction.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/slot"
	"workshop-scheduler-backend/internal/store"
)

// Notifier is told when an employee becomes available again so watchers
// can be pushed a notification. Implementations must not block.
type Notifier interface {
	EmployeeAvailable(employeeID string)
}

// Engine owns all mutations of employee/job/assignment state. It is driven
// synchronously by one operator session at a time; there is no internal
// locking.
type Engine struct {
	store  store.Store
	notify Notifier
}

// New creates an Engine on top of the given store. notify may be nil.
func New(s store.Store, notify Notifier) *Engine {
	return &Engine{store: s, notify: notify}
}

// Store exposes the underlying entity store for read-side callers.
func (e *Engine) Store() store.Store {
	return e.store
}

// Assign books employeeID onto jobID starting at startHour on date for
// durationHours, expanding the duration into hourly slot rows. Hours
// outside the working range are clipped and slots already occupied by the
// employee are skipped; both behaviors are silent. The returned ids are
// the assignment rows actually created.
//
// The employee must be available, or already busy on this same job (adding
// further slots). The job's assignee set and both statuses are updated in
// the same transaction as the slot rows.
func (e *Engine) Assign(ctx context.Context, employeeID, jobID string, date time.Time, startHour int, durationHours float64) ([]string, error) {
	emp, err := e.store.Employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, notFound("employee", employeeID)
	}
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("job", jobID)
	}

	sameJob := emp.CurrentJob != nil && *emp.CurrentJob == jobID
	if emp.Status != model.EmployeeAvailable && !(emp.Status == model.EmployeeBusy && sameJob) {
		return nil, fmt.Errorf("employee %s is %s: %w", employeeID, emp.Status, ErrEmployeeUnavailable)
	}

	MigrateLegacyAssignment(job)

	labels := slot.Expand(startHour, durationHours)
	if clipped := int(durationHours + 0.5); len(labels) < clipped {
		log.Printf("assign %s/%s: %d of %d slot(s) fall outside working hours, clipped", employeeID, jobID, clipped-len(labels), clipped)
	}

	existing, err := e.store.EmployeeAssignments(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	dateStr := date.Format("2006-01-02")
	occupied := make(map[string]bool, len(existing))
	for _, a := range existing {
		occupied[a.Date+" "+a.Hour] = true
	}

	var (
		rows []model.Assignment
		ids  []string
	)
	weekday := slot.WeekdayIndex(date)
	start := slot.Label(startHour)
	for _, hour := range labels {
		if occupied[dateStr+" "+hour] {
			log.Printf("assign %s/%s: slot %s %s already booked, skipped", employeeID, jobID, dateStr, hour)
			continue
		}
		row := model.Assignment{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			JobID:      jobID,
			Date:       dateStr,
			Weekday:    weekday,
			Hour:       hour,
			StartTime:  start,
			Duration:   durationHours,
			JobTitle:   job.Title(),
		}
		rows = append(rows, row)
		ids = append(ids, row.ID)
	}

	if !job.HasAssignee(employeeID) {
		job.AssignedEmployees = append(job.AssignedEmployees, employeeID)
	}
	if job.Status == model.JobPending {
		job.Status = model.JobAssigned
	}
	emp.Status = model.EmployeeBusy
	emp.CurrentJob = &jobID

	err = e.store.Transaction(ctx, func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Save(emp).Error
	})
	if err != nil {
		return nil, fmt.Errorf("assign %s/%s: %w: %w", employeeID, jobID, store.ErrStore, err)
	}
	return ids, nil
}

// Unassign removes employeeID from jobID's assignee set, deletes the
// employee's slot rows for that job, and frees the employee. The job
// reverts to pending only when the set empties and the job was still in
// the assigned state; a bay link is never touched here (bay release is an
// explicit separate operation).
func (e *Engine) Unassign(ctx context.Context, employeeID, jobID string) error {
	emp, err := e.store.Employee(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return notFound("employee", employeeID)
	}
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return notFound("job", jobID)
	}

	MigrateLegacyAssignment(job)

	remaining := job.AssignedEmployees[:0:0]
	for _, id := range job.AssignedEmployees {
		if id != employeeID {
			remaining = append(remaining, id)
		}
	}
	job.AssignedEmployees = remaining
	if len(job.AssignedEmployees) == 0 && job.Status == model.JobAssigned {
		job.Status = model.JobPending
	}

	emp.Status = model.EmployeeAvailable
	emp.CurrentJob = nil

	err = e.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ? AND job_id = ?", employeeID, jobID).
			Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Save(emp).Error
	})
	if err != nil {
		return fmt.Errorf("unassign %s/%s: %w: %w", employeeID, jobID, store.ErrStore, err)
	}

	if e.notify != nil {
		e.notify.EmployeeAvailable(employeeID)
	}
	return nil
}

// MigrateLegacyAssignment folds a job's old single-assignee column into
// the assignee set and clears it. Jobs that already carry a set are left
// alone apart from dropping the stale column; calling this twice is a
// no-op after the first call. The caller persists the job.
func MigrateLegacyAssignment(j *model.Job) bool {
	changed := false
	if j.AssignedEmployees == nil {
		j.AssignedEmployees = []string{}
		if j.LegacyAssignee != nil && *j.LegacyAssignee != "" {
			j.AssignedEmployees = append(j.AssignedEmployees, *j.LegacyAssignee)
			changed = true
		}
	}
	if j.LegacyAssignee != nil {
		j.LegacyAssignee = nil
		changed = true
	}
	return changed
}

// ResetAllStatuses returns the whole workshop to its unbooked state:
// every employee available with no current job, every job's assignee set
// and bay link cleared (assigned jobs back to pending, other statuses
// preserved), occupied bays released, and all assignment rows discarded.
// All of it happens in one transaction; there is no partial outcome.
func (e *Engine) ResetAllStatuses(ctx context.Context) error {
	jobs, err := e.store.Jobs(ctx)
	if err != nil {
		return err
	}

	err = e.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&model.Employee{}).
			Where("1 = 1").
			Updates(map[string]any{"status": model.EmployeeAvailable, "current_job": nil}).Error; err != nil {
			return err
		}

		for i := range jobs {
			job := &jobs[i]
			job.AssignedEmployees = []string{}
			job.LegacyAssignee = nil
			job.BayID = nil
			if job.Status == model.JobAssigned {
				job.Status = model.JobPending
			}
			if err := tx.Save(job).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Bay{}).
			Where("status = ?", model.BayOccupied).
			Updates(map[string]any{"status": model.BayAvailable, "current_job_id": nil}).Error; err != nil {
			return err
		}

		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Assignment{}).Error
	})
	if err != nil {
		return fmt.Errorf("reset statuses: %w: %w", store.ErrStore, err)
	}
	return nil
}
