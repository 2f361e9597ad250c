package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/routes"
	"hospital-management-server/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var dbSeq int64

// newTestDB opens a named in-memory SQLite database. cache=shared keeps the
// schema visible across pooled connections; a single connection serializes
// writes so the unique-constraint behavior matches MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin-test-pass"
	testUserPassword  = "password123"
)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	if err := models.Seed(db, testAdminUsername, testAdminPassword); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-jwt-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
		AdminUsername:             testAdminUsername,
		AdminPassword:             testAdminPassword,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)

	return &testEnv{t: t, db: db, router: router, cfg: cfg}
}

// envelope mirrors utils.ResponseData with raw Data for per-test decoding.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			e.t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func (e *testEnv) decodeData(env envelope, out interface{}) {
	e.t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		e.t.Fatalf("failed to decode response data %q: %v", string(env.Data), err)
	}
}

func (e *testEnv) tokenFor(user *models.User) string {
	e.t.Helper()
	access, _, err := utils.GenerateTokens(user, e.cfg)
	if err != nil {
		e.t.Fatalf("failed to generate token: %v", err)
	}
	return access
}

func (e *testEnv) adminToken() string {
	e.t.Helper()
	var admin models.User
	if err := e.db.First(&admin, "username = ? AND role = ?", testAdminUsername, models.RoleAdmin).Error; err != nil {
		e.t.Fatalf("failed to load seeded admin: %v", err)
	}
	return e.tokenFor(&admin)
}

func (e *testEnv) departmentByName(name string) models.Department {
	e.t.Helper()
	var dept models.Department
	if err := e.db.First(&dept, "name = ?", name).Error; err != nil {
		e.t.Fatalf("failed to load department %s: %v", name, err)
	}
	return dept
}

// createDoctor inserts a doctor account and profile directly, bypassing the
// admin endpoint, for tests that need fixtures rather than the add flow.
func (e *testEnv) createDoctor(username, name, specialization, departmentName string) (models.Doctor, string) {
	e.t.Helper()

	dept := e.departmentByName(departmentName)
	user := models.User{Username: username, Role: models.RoleDoctor, IsActive: true}
	if err := user.SetPassword(testUserPassword); err != nil {
		e.t.Fatalf("failed to hash password: %v", err)
	}
	if err := e.db.Create(&user).Error; err != nil {
		e.t.Fatalf("failed to create doctor user: %v", err)
	}

	doctor := models.Doctor{
		UserID:         user.ID,
		Name:           name,
		Specialization: specialization,
		DepartmentID:   dept.ID,
		Phone:          "9876543210",
		Email:          username + "@hospital.test",
		Experience:     5,
		IsActive:       true,
	}
	if err := e.db.Create(&doctor).Error; err != nil {
		e.t.Fatalf("failed to create doctor profile: %v", err)
	}
	if err := e.db.Model(&models.Department{}).Where("id = ?", dept.ID).
		UpdateColumn("doctors_count", gorm.Expr("doctors_count + 1")).Error; err != nil {
		e.t.Fatalf("failed to bump department count: %v", err)
	}

	return doctor, e.tokenFor(&user)
}

// createPatient inserts a patient account and profile directly.
func (e *testEnv) createPatient(username, name string) (models.Patient, string) {
	e.t.Helper()

	user := models.User{Username: username, Role: models.RolePatient, IsActive: true}
	if err := user.SetPassword(testUserPassword); err != nil {
		e.t.Fatalf("failed to hash password: %v", err)
	}
	if err := e.db.Create(&user).Error; err != nil {
		e.t.Fatalf("failed to create patient user: %v", err)
	}

	patient := models.Patient{
		UserID:     user.ID,
		Name:       name,
		Age:        30,
		Gender:     "female",
		Phone:      "5551234567",
		Email:      username + "@patients.test",
		Address:    "12 Test Street",
		BloodGroup: "O+",
		IsActive:   true,
	}
	if err := e.db.Create(&patient).Error; err != nil {
		e.t.Fatalf("failed to create patient profile: %v", err)
	}

	return patient, e.tokenFor(&user)
}

// bookAppointment books through the API and returns the created appointment.
func (e *testEnv) bookAppointment(patientToken, doctorID, date, timeOfDay, reason string) models.Appointment {
	e.t.Helper()

	w, env := e.request(http.MethodPost, "/api/v1/appointments", patientToken, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"time":     timeOfDay,
		"reason":   reason,
	})
	if w.Code != http.StatusCreated {
		e.t.Fatalf("expected booking to succeed, got status %d (%s)", w.Code, env.Error)
	}

	var appointment models.Appointment
	e.decodeData(env, &appointment)
	return appointment
}
