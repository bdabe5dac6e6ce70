package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workshop-scheduler-backend/config"
	"workshop-scheduler-backend/internal/db"
	"workshop-scheduler-backend/internal/engine"
	"workshop-scheduler-backend/internal/model"
	"workshop-scheduler-backend/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(testDB))

	s := store.NewGormStore(testDB)
	eng := engine.New(s, nil)

	// Generous limits so throttling never interferes with the tests.
	cfg := &config.ServerConfig{
		Port:            8080,
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 30,
	}
	router := NewRouter(cfg, s, eng, &webpush.Options{VAPIDPublicKey: "test-public-key"})
	return router, s
}

func seedWorkshop(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	employees := []model.Employee{
		{ID: "E1", Name: "John Smith", Role: "Mechanic", Status: model.EmployeeAvailable},
		{ID: "E2", Name: "Maria Garcia", Role: "Technician", Status: model.EmployeeAvailable},
	}
	for i := range employees {
		require.NoError(t, s.SaveEmployee(ctx, &employees[i]))
	}
	jobs := []model.Job{
		{ID: "J1", Vehicle: "Toyota Camry", Service: "Oil Change", Status: model.JobPending, AssignedEmployees: []string{}},
		{ID: "J2", Vehicle: "BMW X5", Service: "Brake Repair", Status: model.JobPending, AssignedEmployees: []string{}},
	}
	for i := range jobs {
		require.NoError(t, s.SaveJob(ctx, &jobs[i]))
	}
	require.NoError(t, s.SaveBay(ctx, &model.Bay{ID: "A01", Section: "A", Number: 1, Status: model.BayAvailable}))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetEmployees(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var employees []model.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &employees))
	require.Len(t, employees, 2)
	assert.Equal(t, "E1", employees[0].ID)
}

func TestGetJobsWithStatusFilter(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/jobs?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []model.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "J2", jobs[0].ID)
}

func TestPostAssignmentLifecycle(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Created     []string           `json:"created"`
		Assignments []model.Assignment `json:"assignments"`
		Employees   []model.Employee   `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Created, 2)
	assert.Len(t, resp.Assignments, 2)
	require.Len(t, resp.Employees, 2)
	assert.Equal(t, model.EmployeeBusy, resp.Employees[0].Status)

	// Schedule narrows by employee and date.
	w = doJSON(t, router, http.MethodGet, "/api/schedule?employee_id=E1&date=2024-06-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var schedule struct {
		Hours       []string           `json:"hours"`
		Assignments []model.Assignment `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schedule))
	assert.Len(t, schedule.Hours, 10)
	assert.Len(t, schedule.Assignments, 2)

	// Unassigning frees the employee again.
	w = doJSON(t, router, http.MethodDelete, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	emp, err := s.Employee(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeAvailable, emp.Status)
}

func TestPostAssignmentErrors(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E99", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "not-a-date", "startHour": 9, "duration": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// E1 gets busy on J1; booking them on J2 conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J2", "date": "2024-06-03", "startHour": 11, "duration": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPutJobAssignees(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Swap the crew: E1 out, E2 in.
	w = doJSON(t, router, http.MethodPut, "/api/jobs/J1/assignees", gin.H{
		"assigned": []string{"E2"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	job, err := s.Job(ctx, "J1")
	require.NoError(t, err)
	assert.Equal(t, []string{"E2"}, job.AssignedEmployees)

	e1, err := s.Employee(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeAvailable, e1.Status)
	e2, err := s.Employee(ctx, "E2")
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeBusy, e2.Status)
}

func TestPutJobAssigneesStaleEmployee(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	// E2 is already busy elsewhere, so proposing them is stale.
	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E2", "jobId": "J2", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/jobs/J1/assignees", gin.H{
		"assigned": []string{"E2"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBayPairingEndpoints(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/bays/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ready struct {
		ReadyJobs     []model.Job `json:"readyJobs"`
		AvailableBays []model.Bay `json:"availableBays"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	require.Len(t, ready.ReadyJobs, 1)
	require.Len(t, ready.AvailableBays, 1)

	w = doJSON(t, router, http.MethodPost, "/api/bays/A01/assign", gin.H{"jobId": "J1"})
	require.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	bay, err := s.Bay(ctx, "A01")
	require.NoError(t, err)
	assert.Equal(t, model.BayOccupied, bay.Status)

	// Occupied bay rejects a second pairing.
	w = doJSON(t, router, http.MethodPost, "/api/bays/A01/assign", gin.H{"jobId": "J2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/bays/A01/release", nil)
	require.Equal(t, http.StatusOK, w.Code)

	bay, err = s.Bay(ctx, "A01")
	require.NoError(t, err)
	assert.Equal(t, model.BayAvailable, bay.Status)
}

func TestResetEndpoint(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPost, "/api/assignments", gin.H{
		"employeeId": "E1", "jobId": "J1", "date": "2024-06-03", "startHour": 9, "duration": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ctx := context.Background()
	emp, err := s.Employee(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeAvailable, emp.Status)

	rows, err := s.Assignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetMonthGrid(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/calendar/month?year=2024&month=6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Year  int        `json:"year"`
		Month int        `json:"month"`
		Weeks [][]string `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2024, resp.Year)
	require.Len(t, resp.Weeks, 6)
	assert.Equal(t, "2024-05-27", resp.Weeks[0][0])
	assert.Equal(t, "2024-07-07", resp.Weeks[5][6])

	w = doJSON(t, router, http.MethodGet, "/api/calendar/month?year=2024&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionEndpoints(t *testing.T) {
	router, s := newTestRouter(t)
	seedWorkshop(t, s)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint":             "https://example.com/push",
		"p256dh":               "key",
		"auth":                 "secret",
		"subscribed_employees": []string{"E1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint=https%3A%2F%2Fexample.com%2Fpush", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		SubscribedEmployees []string `json:"subscribed_employees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"E1"}, got.SubscribedEmployees)

	w = doJSON(t, router, http.MethodDelete, "/api/subscriptions", gin.H{
		"endpoint": "https://example.com/push",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint=https%3A%2F%2Fexample.com%2Fpush", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVAPIDPublicKey(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test-public-key", resp["public_key"])
}
