package engine

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/store"
)

// Diff is the pending change set of a staged-edit session: employees to
// bind to the job and employees to release. The two sides never overlap.
type Diff struct {
	ToAssign   []string `json:"toAssign"`
	ToUnassign []string `json:"toUnassign"`
}

// Empty reports whether the diff carries no changes.
func (d Diff) Empty() bool {
	return len(d.ToAssign) == 0 && len(d.ToUnassign) == 0
}

// Session is a scratch buffer for proposing changes to one job's assignee
// set. Staging never touches the store; only Commit writes, and it writes
// the whole diff or nothing. A session is single-use: after Commit or
// Cancel it is closed.
//
// Two sessions opened concurrently on the same job are a documented
// hazard: last commit wins, guarded only by the stale-employee check at
// commit time.
type Session struct {
	engine   *Engine
	jobID    string
	bayID    string
	original []string
	current  []string
	closed   bool
}

// OpenSession snapshots jobID's committed assignee set into a new session.
// bayID is optional context for sessions opened from a bay card.
func (e *Engine) OpenSession(ctx context.Context, jobID, bayID string) (*Session, error) {
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound("job", jobID)
	}
	MigrateLegacyAssignment(job)

	return &Session{
		engine:   e,
		jobID:    jobID,
		bayID:    bayID,
		original: append([]string(nil), job.AssignedEmployees...),
		current:  append([]string(nil), job.AssignedEmployees...),
	}, nil
}

// JobID returns the job this session edits.
func (s *Session) JobID() string { return s.jobID }

// Assigned returns a copy of the working assignee set.
func (s *Session) Assigned() []string {
	return append([]string(nil), s.current...)
}

// StageAdd puts employeeID into the working set. Adding an id already
// present is a no-op.
func (s *Session) StageAdd(employeeID string) {
	for _, id := range s.current {
		if id == employeeID {
			return
		}
	}
	s.current = append(s.current, employeeID)
}

// StageRemove drops employeeID from the working set. Removing an absent
// id is a no-op.
func (s *Session) StageRemove(employeeID string) {
	kept := s.current[:0]
	for _, id := range s.current {
		if id != employeeID {
			kept = append(kept, id)
		}
	}
	s.current = kept
}

// Diff computes the set differences between the working set and the
// snapshot taken at open time.
func (s *Session) Diff() Diff {
	var d Diff
	for _, id := range s.current {
		if !contains(s.original, id) {
			d.ToAssign = append(d.ToAssign, id)
		}
	}
	for _, id := range s.original {
		if !contains(s.current, id) {
			d.ToUnassign = append(d.ToUnassign, id)
		}
	}
	return d
}

// Commit applies the whole diff: to-assign employees become busy and
// linked to the job, to-unassign employees become available with their
// slot rows for this job removed, and the job's assignee set is replaced
// by the working set. Everything is validated before anything is written;
// if any to-assign employee has meanwhile stopped being available the
// commit fails with ErrStaleEmployeeState and the store is untouched.
// Committing an empty diff is a valid no-op. The session closes either
// way on success.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}

	diff := s.Diff()
	if diff.Empty() {
		s.closed = true
		return nil
	}

	st := s.engine.store
	job, err := st.Job(ctx, s.jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return notFound("job", s.jobID)
	}
	MigrateLegacyAssignment(job)

	// Validate the full diff before writing any entity.
	toAssign := make([]*model.Employee, 0, len(diff.ToAssign))
	for _, id := range diff.ToAssign {
		emp, err := st.Employee(ctx, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return notFound("employee", id)
		}
		if emp.Status != model.EmployeeAvailable {
			return fmt.Errorf("employee %s is %s: %w", id, emp.Status, ErrStaleEmployeeState)
		}
		toAssign = append(toAssign, emp)
	}
	toUnassign := make([]*model.Employee, 0, len(diff.ToUnassign))
	for _, id := range diff.ToUnassign {
		emp, err := st.Employee(ctx, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return notFound("employee", id)
		}
		toUnassign = append(toUnassign, emp)
	}

	job.AssignedEmployees = append([]string(nil), s.current...)
	if len(job.AssignedEmployees) > 0 && job.Status == model.JobPending {
		job.Status = model.JobAssigned
	}
	if len(job.AssignedEmployees) == 0 && job.Status == model.JobAssigned {
		job.Status = model.JobPending
	}

	err = st.Transaction(ctx, func(tx *gorm.DB) error {
		for _, emp := range toAssign {
			emp.Status = model.EmployeeBusy
			jobID := s.jobID
			emp.CurrentJob = &jobID
			if err := tx.Save(emp).Error; err != nil {
				return err
			}
		}
		for _, emp := range toUnassign {
			emp.Status = model.EmployeeAvailable
			emp.CurrentJob = nil
			if err := tx.Save(emp).Error; err != nil {
				return err
			}
			if err := tx.Where("employee_id = ? AND job_id = ?", emp.ID, s.jobID).
				Delete(&model.Assignment{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(job).Error
	})
	if err != nil {
		return fmt.Errorf("commit session for job %s: %w: %w", s.jobID, store.ErrStore, err)
	}

	s.closed = true
	if s.engine.notify != nil {
		for _, id := range diff.ToUnassign {
			s.engine.notify.EmployeeAvailable(id)
		}
	}
	return nil
}

// Cancel discards the session without touching the store.
func (s *Session) Cancel() {
	s.closed = true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
