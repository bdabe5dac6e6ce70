// Package seed loads the initial workshop data set into an empty store.
package seed

import (
	"context"
	"fmt"
	"log"

	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/parse"
	"workshop-scheduler-backend/internal/store"
)

var employees = []model.Employee{
	{ID: "EMP001", Name: "John Smith", Role: "Senior Technician",
		Specialties: []string{"Engine Repair", "Transmission", "Diagnostics"},
		HourlyRate:  35, Status: model.EmployeeAvailable},
	{ID: "EMP002", Name: "Maria Garcia", Role: "Lead Mechanic",
		Specialties: []string{"Brake Systems", "Suspension", "Electrical"},
		HourlyRate:  32, Status: model.EmployeeAvailable},
	{ID: "EMP003", Name: "David Johnson", Role: "Technician",
		Specialties: []string{"Oil Change", "Tire Service", "Basic Maintenance"},
		HourlyRate:  25, Status: model.EmployeeAvailable},
	{ID: "EMP004", Name: "Sarah Wilson", Role: "Diagnostic Specialist",
		Specialties: []string{"Computer Diagnostics", "Engine Analysis", "Emissions"},
		HourlyRate:  38, Status: model.EmployeeAvailable},
	{ID: "EMP005", Name: "Mike Chen", Role: "Apprentice",
		Specialties: []string{"General Assistance", "Parts Handling", "Basic Repairs"},
		HourlyRate:  18, Status: model.EmployeeAvailable},
	{ID: "EMP006", Name: "Lisa Brown", Role: "Senior Technician",
		Specialties: []string{"AC/Heating", "Electrical Systems", "Hybrid Vehicles"},
		HourlyRate:  36, Status: model.EmployeeAvailable},
}

type baySpec struct {
	code      string
	bayType   string
	equipment []string
}

var bays = []baySpec{
	{"A01", "General Service", []string{"Two-Post Lift", "Air Tools"}},
	{"A02", "General Service", []string{"Two-Post Lift", "Air Tools"}},
	{"A03", "General Service", []string{"Two-Post Lift", "Fluid Station"}},
	{"B01", "Diagnostics", []string{"Scan Tools", "Emissions Analyzer"}},
	{"B02", "Diagnostics", []string{"Scan Tools", "Oscilloscope"}},
	{"C01", "Heavy Repair", []string{"Four-Post Lift", "Engine Hoist"}},
	{"C02", "Heavy Repair", []string{"Four-Post Lift", "Transmission Jack"}},
	{"D01", "Alignment", []string{"Alignment Rack"}},
}

type jobSpec struct {
	id       string
	vehicle  string
	customer string
	service  string
	priority string
}

var jobs = []jobSpec{
	{"JOB001", "Toyota Camry", "John Smith", "Oil Change", "low"},
	{"JOB002", "BMW X5", "Sarah Johnson", "Brake Repair", "high"},
	{"JOB003", "Honda Civic", "Mike Brown", "Tire Rotation", "medium"},
	{"JOB004", "Ford F-150", "David Wilson", "Engine Diagnostic", "high"},
	{"JOB005", "Nissan Altima", "Lisa Davis", "AC Service", "medium"},
}

// Run populates the store with the initial employees, bays, and sample
// jobs. It is a no-op when employees already exist, so restarting the
// service never duplicates or resets data.
func Run(ctx context.Context, s store.Store) error {
	existing, err := s.Employees(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Printf("empty store, seeding %d employees, %d bays, %d jobs", len(employees), len(bays), len(jobs))

	for i := range employees {
		e := employees[i]
		if err := s.SaveEmployee(ctx, &e); err != nil {
			return err
		}
	}

	for _, spec := range bays {
		code, err := parse.ParseBayCode(spec.code)
		if err != nil {
			return fmt.Errorf("seed bay %s: %w", spec.code, err)
		}
		b := model.Bay{
			ID:        spec.code,
			Type:      spec.bayType,
			Section:   code.Section,
			Number:    code.Number,
			Capacity:  1,
			Equipment: spec.equipment,
			Status:    model.BayAvailable,
		}
		if err := s.SaveBay(ctx, &b); err != nil {
			return err
		}
	}

	for _, spec := range jobs {
		j := model.Job{
			ID:                spec.id,
			Vehicle:           spec.vehicle,
			Customer:          spec.customer,
			Service:           spec.service,
			Priority:          spec.priority,
			Status:            model.JobPending,
			AssignedEmployees: []string{},
		}
		if err := s.SaveJob(ctx, &j); err != nil {
			return err
		}
	}

	return nil
}
