package handlers_test

import (
	"net/http"
	"testing"

	"hospital-management-server/internal/models"
)

func TestAdminDashboard_Counts(t *testing.T) {
	e := newTestEnv(t)
	doctor, _ := e.createDoctor("dryang", "Cristina Yang", "Cardiothoracic Surgery", "Cardiology")
	removed, _ := e.createDoctor("drburke", "Preston Burke", "Cardiothoracic Surgery", "Cardiology")
	patient, _ := e.createPatient("pat1", "Patient One")

	insertAppointment(t, e, patient.ID, doctor.ID, futureDate(1), "10:00", models.StatusBooked)
	insertAppointment(t, e, patient.ID, doctor.ID, pastDate(1), "10:00", models.StatusCancelled)

	if w, _ := e.request(http.MethodDelete, "/api/v1/doctors/"+removed.ID, e.adminToken(), nil); w.Code != http.StatusOK {
		t.Fatalf("removal failed")
	}

	w, env := e.request(http.MethodGet, "/api/v1/dashboard/admin", e.adminToken(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, env.Error)
	}

	var dash struct {
		TotalDoctors       int64 `json:"totalDoctors"`
		TotalPatients      int64 `json:"totalPatients"`
		TotalAppointments  int64 `json:"totalAppointments"`
		RecentAppointments []struct {
			PatientName string `json:"patientName"`
		} `json:"recentAppointments"`
	}
	e.decodeData(env, &dash)

	if dash.TotalDoctors != 1 {
		t.Errorf("inactive doctors must not be counted, got %d", dash.TotalDoctors)
	}
	if dash.TotalPatients != 1 {
		t.Errorf("expected 1 patient, got %d", dash.TotalPatients)
	}
	if dash.TotalAppointments != 2 {
		t.Errorf("expected 2 appointments (all statuses), got %d", dash.TotalAppointments)
	}
	if len(dash.RecentAppointments) != 2 {
		t.Errorf("expected 2 recent appointments, got %d", len(dash.RecentAppointments))
	}
}

func TestDoctorDashboard_UpcomingAndDistinctPatients(t *testing.T) {
	e := newTestEnv(t)
	doctor, doctorToken := e.createDoctor("dryang", "Cristina Yang", "Cardiothoracic Surgery", "Cardiology")
	first, _ := e.createPatient("pat1", "Patient One")
	second, _ := e.createPatient("pat2", "Patient Two")

	// Two visits by the same patient count once in the distinct total.
	insertAppointment(t, e, first.ID, doctor.ID, pastDate(10), "09:00", models.StatusCompleted)
	insertAppointment(t, e, first.ID, doctor.ID, futureDate(1), "09:00", models.StatusBooked)
	insertAppointment(t, e, second.ID, doctor.ID, futureDate(2), "09:00", models.StatusBooked)
	insertAppointment(t, e, second.ID, doctor.ID, futureDate(3), "09:00", models.StatusCancelled)

	w, env := e.request(http.MethodGet, "/api/v1/dashboard/doctor", doctorToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, env.Error)
	}

	var dash struct {
		TotalPatients        int64 `json:"totalPatients"`
		UpcomingAppointments []struct {
			Date string `json:"date"`
		} `json:"upcomingAppointments"`
	}
	e.decodeData(env, &dash)

	if dash.TotalPatients != 2 {
		t.Errorf("expected 2 distinct patients, got %d", dash.TotalPatients)
	}
	if len(dash.UpcomingAppointments) != 2 {
		t.Fatalf("expected 2 upcoming Booked appointments, got %d", len(dash.UpcomingAppointments))
	}
	if dash.UpcomingAppointments[0].Date > dash.UpcomingAppointments[1].Date {
		t.Error("upcoming appointments must be soonest first")
	}
}
