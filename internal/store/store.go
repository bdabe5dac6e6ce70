// Package store is the persistence layer for workshop entities. It does no
// validation; invariants are the engine's job.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"workshop-scheduler-backend/internal/model"
)

// ErrStore marks a persistence I/O failure. The in-memory copies held by
// callers stay authoritative for the session; the error is surfaced to the
// operator as a warning, not retried.
var ErrStore = errors.New("store error")

// Store defines the database operations used by the engine and the API
// layer. Lookups return (nil, nil) when the record does not exist; the
// caller decides whether that is an error.
type Store interface {
	DB() *gorm.DB
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Employees(ctx context.Context) ([]model.Employee, error)
	Employee(ctx context.Context, id string) (*model.Employee, error)
	SaveEmployee(ctx context.Context, e *model.Employee) error

	Jobs(ctx context.Context) ([]model.Job, error)
	JobsWhere(ctx context.Context, pred func(model.Job) bool) ([]model.Job, error)
	Job(ctx context.Context, id string) (*model.Job, error)
	SaveJob(ctx context.Context, j *model.Job) error

	Bays(ctx context.Context) ([]model.Bay, error)
	BaysWhere(ctx context.Context, pred func(model.Bay) bool) ([]model.Bay, error)
	Bay(ctx context.Context, id string) (*model.Bay, error)
	SaveBay(ctx context.Context, b *model.Bay) error

	Assignments(ctx context.Context) ([]model.Assignment, error)
	EmployeeAssignments(ctx context.Context, employeeID string) ([]model.Assignment, error)
	CreateAssignments(ctx context.Context, rows []model.Assignment) error
	DeleteAssignments(ctx context.Context, employeeID, jobID string) error
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

func (s *gormStore) Employees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.db.WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, wrap("load employees", err)
	}
	return employees, nil
}

func (s *gormStore) Employee(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(fmt.Sprintf("load employee %s", id), err)
	}
	return &e, nil
}

func (s *gormStore) SaveEmployee(ctx context.Context, e *model.Employee) error {
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return wrap(fmt.Sprintf("save employee %s", e.ID), err)
	}
	return nil
}

func (s *gormStore) Jobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := s.db.WithContext(ctx).Order("id").Find(&jobs).Error; err != nil {
		return nil, wrap("load jobs", err)
	}
	return jobs, nil
}

func (s *gormStore) JobsWhere(ctx context.Context, pred func(model.Job) bool) ([]model.Job, error) {
	jobs, err := s.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			matched = append(matched, j)
		}
	}
	return matched, nil
}

func (s *gormStore) Job(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job
	err := s.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(fmt.Sprintf("load job %s", id), err)
	}
	return &j, nil
}

func (s *gormStore) SaveJob(ctx context.Context, j *model.Job) error {
	if err := s.db.WithContext(ctx).Save(j).Error; err != nil {
		return wrap(fmt.Sprintf("save job %s", j.ID), err)
	}
	return nil
}

func (s *gormStore) Bays(ctx context.Context) ([]model.Bay, error) {
	var bays []model.Bay
	if err := s.db.WithContext(ctx).Order("section, number").Find(&bays).Error; err != nil {
		return nil, wrap("load bays", err)
	}
	return bays, nil
}

func (s *gormStore) BaysWhere(ctx context.Context, pred func(model.Bay) bool) ([]model.Bay, error) {
	bays, err := s.Bays(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Bay, 0, len(bays))
	for _, b := range bays {
		if pred(b) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (s *gormStore) Bay(ctx context.Context, id string) (*model.Bay, error) {
	var b model.Bay
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(fmt.Sprintf("load bay %s", id), err)
	}
	return &b, nil
}

func (s *gormStore) SaveBay(ctx context.Context, b *model.Bay) error {
	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return wrap(fmt.Sprintf("save bay %s", b.ID), err)
	}
	return nil
}

func (s *gormStore) Assignments(ctx context.Context) ([]model.Assignment, error) {
	var rows []model.Assignment
	if err := s.db.WithContext(ctx).Order("date, hour").Find(&rows).Error; err != nil {
		return nil, wrap("load assignments", err)
	}
	return rows, nil
}

func (s *gormStore) EmployeeAssignments(ctx context.Context, employeeID string) ([]model.Assignment, error) {
	var rows []model.Assignment
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date, hour").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("load assignments for %s", employeeID), err)
	}
	return rows, nil
}

func (s *gormStore) CreateAssignments(ctx context.Context, rows []model.Assignment) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return wrap("create assignments", err)
	}
	return nil
}

func (s *gormStore) DeleteAssignments(ctx context.Context, employeeID, jobID string) error {
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND job_id = ?", employeeID, jobID).
		Delete(&model.Assignment{}).Error
	if err != nil {
		return wrap(fmt.Sprintf("delete assignments for %s/%s", employeeID, jobID), err)
	}
	return nil
}
