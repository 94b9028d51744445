package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vidamais/portal-api/internal/handler"
	appointmenthandler "github.com/vidamais/portal-api/internal/handler/appointment"
	audithandler "github.com/vidamais/portal-api/internal/handler/audit"
	authhandler "github.com/vidamais/portal-api/internal/handler/auth"
	billinghandler "github.com/vidamais/portal-api/internal/handler/billing"
	patienthandler "github.com/vidamais/portal-api/internal/handler/patient"
	recordhandler "github.com/vidamais/portal-api/internal/handler/record"
	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository/memory"
	"github.com/vidamais/portal-api/internal/service/access"
	appointmentsvc "github.com/vidamais/portal-api/internal/service/appointment"
	"github.com/vidamais/portal-api/internal/service/audit"
	authsvc "github.com/vidamais/portal-api/internal/service/auth"
	billingsvc "github.com/vidamais/portal-api/internal/service/billing"
	patientsvc "github.com/vidamais/portal-api/internal/service/patient"
	recordsvc "github.com/vidamais/portal-api/internal/service/record"
	pkgauth "github.com/vidamais/portal-api/pkg/auth"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	model.RegisterValidations()

	patients := memory.NewPatientRepository()
	appointments := memory.NewAppointmentRepository()
	invoices := memory.NewInvoiceRepository()
	records := memory.NewMedicalRecordRepository()

	ctx := context.Background()
	require.NoError(t, patients.Insert(ctx, &model.Patient{
		Name: "Ana Alfa", Email: "ana@example.com",
		Role: model.RoleClient, Status: model.PatientStatusActive,
	}))
	require.NoError(t, patients.Insert(ctx, &model.Patient{
		Name: "Bruno Beta", Email: "bruno@example.com",
		Role: model.RoleClient, Status: model.PatientStatusActive,
	}))
	require.NoError(t, patients.Insert(ctx, &model.Patient{
		Name: "Recepcao", Email: "staff@example.com",
		Role: model.RoleAdmin, Status: model.PatientStatusActive,
	}))

	auditor := audit.NewService(zerolog.Nop())
	policy := access.NewPolicy(nil)
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour, "portal-api-test")

	authService := authsvc.NewService(patients, jwtSvc, auditor)
	appointmentService := appointmentsvc.NewService(appointments, policy, nil, auditor, nil)
	billingService := billingsvc.NewService(invoices, policy, auditor, nil)
	recordService := recordsvc.NewService(records, policy, auditor)
	patientService := patientsvc.NewService(patients, policy, auditor)

	r := NewRouter(
		middleware.NewAuthMiddleware(authService, time.Minute),
		authhandler.NewHandler(authService),
		appointmenthandler.NewHandler(appointmentService),
		billinghandler.NewHandler(billingService),
		recordhandler.NewHandler(recordService),
		patienthandler.NewHandler(patientService, auditor),
		audithandler.NewHandler(auditor),
		handler.NewHandler(),
		Config{
			RateLimit:     rate.Limit(1000),
			RateBurst:     1000,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: fmt.Sprintf("portal_test_%d", time.Now().UnixNano()),
		},
	)
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	status, resp := request(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, status)

	var tokens model.TokenResponse
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestAppointmentLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	ana := login(t, srv, "ana@example.com")
	bruno := login(t, srv, "bruno@example.com")
	staff := login(t, srv, "staff@example.com")

	// Ana books an appointment.
	status, resp := request(t, srv, http.MethodPost, "/api/v1/appointments", ana, map[string]interface{}{
		"date":      "2025-04-10T00:00:00Z",
		"time_slot": "10:00",
		"specialty": "cardiology",
		"doctor":    "Dra. Costa",
	})
	require.Equal(t, http.StatusCreated, status)

	var created model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)

	// An unknown doctor is rejected up front.
	status, _ = request(t, srv, http.MethodPost, "/api/v1/appointments", ana, map[string]interface{}{
		"date":      "2025-04-10T00:00:00Z",
		"time_slot": "10:00",
		"specialty": "cardiology",
		"doctor":    "Dr. Nobody",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Bruno cannot see Ana's appointment.
	status, _ = request(t, srv, http.MethodGet, "/api/v1/appointments/"+created.ID.String(), bruno, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Bruno cannot cancel it either.
	status, _ = request(t, srv, http.MethodPost, "/api/v1/appointments/"+created.ID.String()+"/cancel", bruno, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Staff sees it in the full listing.
	status, resp = request(t, srv, http.MethodGet, "/api/v1/appointments", staff, nil)
	require.Equal(t, http.StatusOK, status)
	var all []*model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &all))
	require.Len(t, all, 1)

	// Ana cancels, then a repeat cancel conflicts.
	status, _ = request(t, srv, http.MethodPost, "/api/v1/appointments/"+created.ID.String()+"/cancel", ana, nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = request(t, srv, http.MethodPost, "/api/v1/appointments/"+created.ID.String()+"/cancel", ana, nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "already cancelled")
}

func TestAuthenticationRequiredOnProtectedRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, _ := request(t, srv, http.MethodGet, "/api/v1/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, srv, http.MethodGet, "/api/v1/invoices", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuditTrailIsStaffOnly(t *testing.T) {
	srv := newTestServer(t)

	ana := login(t, srv, "ana@example.com")
	staff := login(t, srv, "staff@example.com")

	status, _ := request(t, srv, http.MethodGet, "/api/v1/audit", ana, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp := request(t, srv, http.MethodGet, "/api/v1/audit", staff, nil)
	require.Equal(t, http.StatusOK, status)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &entries))
	assert.NotEmpty(t, entries, "logins are audited")
}

func TestClinicalHistoryAppendIsStaffOnlyOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	ana := login(t, srv, "ana@example.com")
	staff := login(t, srv, "staff@example.com")

	// Ana can read her history but cannot write to it.
	entry := map[string]interface{}{
		"date":    "2025-03-01T00:00:00Z",
		"type":    "exam",
		"author":  "Lab Central",
		"summary": "Hemograma completo",
	}
	status, _ := request(t, srv, http.MethodPost, "/api/v1/records", ana, entry)
	assert.Equal(t, http.StatusForbidden, status)

	// Staff appends on her behalf.
	var ana2 model.Patient
	status, resp := request(t, srv, http.MethodGet, "/api/v1/profile", ana, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &ana2))

	entry["patient_id"] = ana2.ID.String()
	status, resp = request(t, srv, http.MethodPost, "/api/v1/records", staff, entry)
	require.Equal(t, http.StatusCreated, status)

	var stored model.MedicalRecord
	require.NoError(t, json.Unmarshal(resp.Data, &stored))
	assert.Equal(t, ana2.ID, stored.PatientID)

	// And the entry shows up in Ana's own listing.
	status, resp = request(t, srv, http.MethodGet, "/api/v1/records", ana, nil)
	require.Equal(t, http.StatusOK, status)
	var mine []*model.MedicalRecord
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Hemograma completo", mine[0].Summary)
}

func TestStaffUpdatesClientContactDetails(t *testing.T) {
	srv := newTestServer(t)

	ana := login(t, srv, "ana@example.com")
	staff := login(t, srv, "staff@example.com")

	var me model.Patient
	status, resp := request(t, srv, http.MethodGet, "/api/v1/profile", ana, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &me))

	status, resp = request(t, srv, http.MethodPut, "/api/v1/patients/"+me.ID.String(), staff, map[string]string{
		"phone": "+55 11 91234-5678",
	})
	require.Equal(t, http.StatusOK, status)

	var updated model.Patient
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "+55 11 91234-5678", updated.Phone)
	assert.Equal(t, "Ana Alfa", updated.Name)

	// Another client cannot take the same path to Ana's record.
	bruno := login(t, srv, "bruno@example.com")
	status, _ = request(t, srv, http.MethodPut, "/api/v1/patients/"+me.ID.String(), bruno, map[string]string{
		"phone": "+55 11 90000-0000",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRecentActivityShowsOwnActionsOnly(t *testing.T) {
	srv := newTestServer(t)

	ana := login(t, srv, "ana@example.com")
	bruno := login(t, srv, "bruno@example.com")

	// Generate some activity under each account.
	status, _ := request(t, srv, http.MethodPost, "/api/v1/appointments", ana, map[string]interface{}{
		"date":      "2025-04-10T00:00:00Z",
		"time_slot": "09:00",
		"specialty": "dermatology",
		"doctor":    "Dr. Mendes",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = request(t, srv, http.MethodGet, "/api/v1/appointments", bruno, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := request(t, srv, http.MethodGet, "/api/v1/profile/activity", ana, nil)
	require.Equal(t, http.StatusOK, status)

	var activity []audit.Entry
	require.NoError(t, json.Unmarshal(resp.Data, &activity))
	require.NotEmpty(t, activity)

	var me model.Patient
	status, resp = request(t, srv, http.MethodGet, "/api/v1/profile", ana, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &me))

	for _, e := range activity {
		assert.Equal(t, me.ID, e.CallerID)
	}
	assert.Equal(t, "create", activity[0].Action)
	assert.Equal(t, "appointment", activity[0].EntityType)
}

func TestLoginRejectsUnknownAccount(t *testing.T) {
	srv := newTestServer(t)

	status, resp := request(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, resp.Success)
}
