package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"embtrack/cmd/internal/service"
	"embtrack/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

// stubService answers with canned data so the tests exercise only the
// HTTP layer.
type stubService struct {
	appointments []*service.AppointmentResponse
	created      *service.AppointmentRequest
	csv          []byte
	restored     int
	apierr       apierror.ErrorResponse
}

func (s *stubService) GetAppointments(query string, interviewOnly bool) ([]*service.AppointmentResponse, apierror.ErrorResponse) {
	return s.appointments, s.apierr
}

func (s *stubService) CreateAppointment(req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse) {
	if s.apierr != nil {
		return nil, s.apierr
	}
	s.created = req
	return &service.AppointmentResponse{ID: 1, ApplicantName: &req.ApplicantName}, nil
}

func (s *stubService) UpdateAppointment(id int, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse) {
	if s.apierr != nil {
		return nil, s.apierr
	}
	return &service.AppointmentResponse{ID: id}, nil
}

func (s *stubService) DeleteAppointment(id int) apierror.ErrorResponse {
	return s.apierr
}

func (s *stubService) DeleteAllAppointments() apierror.ErrorResponse {
	return s.apierr
}

func (s *stubService) ExportCSV() ([]byte, apierror.ErrorResponse) {
	return s.csv, s.apierr
}

func (s *stubService) RestoreCSV(data []byte) (*service.RestoreResponse, apierror.ErrorResponse) {
	if s.apierr != nil {
		return nil, s.apierr
	}
	return &service.RestoreResponse{Restored: s.restored}, nil
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetAppointmentsEnvelope(t *testing.T) {
	name := "A"
	route := NewAppointmentDefault(&stubService{
		appointments: []*service.AppointmentResponse{{ID: 1, ApplicantName: &name}},
	})

	c, rec := newContext(http.MethodGet, "/api/appointments", "")
	if err := route.GetAppointments(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"appointments"`) || !strings.Contains(body, `"total":1`) {
		t.Errorf("Unexpected envelope: %s", body)
	}
}

func TestCreateAppointment(t *testing.T) {
	stub := &stubService{}
	route := NewAppointmentDefault(stub)

	c, rec := newContext(http.MethodPost, "/api/appointments", `{"applicant_name":"A","interview_date":"2024-05-10"}`)
	if err := route.CreateAppointment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rec.Code)
	}
	if stub.created == nil || stub.created.InterviewDate != "2024-05-10" {
		t.Errorf("Request not passed through to the service: %+v", stub.created)
	}
}

func TestCreateAppointmentBadBody(t *testing.T) {
	route := NewAppointmentDefault(&stubService{})

	c, rec := newContext(http.MethodPost, "/api/appointments", `{not json`)
	if err := route.CreateAppointment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCreateAppointmentValidationError(t *testing.T) {
	route := NewAppointmentDefault(&stubService{
		apierr: apierror.NewValidation("interview_date", "isodate"),
	})

	c, rec := newContext(http.MethodPost, "/api/appointments", `{"interview_date":"bad"}`)
	if err := route.CreateAppointment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "interview_date") {
		t.Errorf("Error body should name the field: %s", rec.Body.String())
	}
}

func TestDeleteAppointmentNonNumericID(t *testing.T) {
	route := NewAppointmentDefault(&stubService{})

	c, rec := newContext(http.MethodDelete, "/api/appointments/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := route.DeleteAppointment(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestExportCSVDownload(t *testing.T) {
	route := NewAppointmentDefault(&stubService{
		csv: []byte("id,applicant_name\n1,A\n"),
	})

	c, rec := newContext(http.MethodGet, "/api/appointments/export", "")
	if err := route.ExportCSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	contentType := rec.Header().Get(echo.HeaderContentType)
	if !strings.Contains(contentType, "text/csv") {
		t.Errorf("Expected Content-Type text/csv, got %s", contentType)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, ".csv") {
		t.Errorf("Expected CSV attachment disposition, got %s", disposition)
	}
	if rec.Body.String() != "id,applicant_name\n1,A\n" {
		t.Errorf("Body altered in transit: %s", rec.Body.String())
	}
}

func TestRestoreCSV(t *testing.T) {
	route := NewAppointmentDefault(&stubService{restored: 2})

	c, rec := newContext(http.MethodPost, "/api/appointments/restore", "id,applicant_name\n")
	if err := route.RestoreCSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"restored":2`) {
		t.Errorf("Expected restored count in body: %s", rec.Body.String())
	}
}

func TestRestoreCSVMalformed(t *testing.T) {
	route := NewAppointmentDefault(&stubService{
		apierr: apierror.NewMalformedInput("CSV format not recognized"),
	})

	c, rec := newContext(http.MethodPost, "/api/appointments/restore", "wrong,header\n")
	if err := route.RestoreCSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "malformed_input") {
		t.Errorf("Expected malformed_input error code: %s", rec.Body.String())
	}
}
