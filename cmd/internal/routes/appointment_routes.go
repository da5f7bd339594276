package routes

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"embtrack/cmd/internal/service"
	"embtrack/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	GetAppointments(query string, interviewOnly bool) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	CreateAppointment(req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	UpdateAppointment(id int, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(id int) apierror.ErrorResponse
	DeleteAllAppointments() apierror.ErrorResponse
	ExportCSV() ([]byte, apierror.ErrorResponse)
	RestoreCSV(data []byte) (*service.RestoreResponse, apierror.ErrorResponse)
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	query := c.QueryParam("q")
	interviewOnly := c.QueryParam("interview_only") == "true"

	appts, apierr := a.AppointmentService.GetAppointments(query, interviewOnly)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts, "total": len(appts)}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.CreateAppointment(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.UpdateAppointment(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := a.AppointmentService.DeleteAppointment(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAppointmentRoute) DeleteAllAppointments(c echo.Context) error {
	if apierr := a.AppointmentService.DeleteAllAppointments(); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

// ExportCSV streams a CSV backup of the full record set as a download.
func (a *DefaultAppointmentRoute) ExportCSV(c echo.Context) error {
	data, apierr := a.AppointmentService.ExportCSV()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	filename := fmt.Sprintf("appointments_backup_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// RestoreCSV re-populates the store from an uploaded backup. The request
// body is the raw CSV.
func (a *DefaultAppointmentRoute) RestoreCSV(c echo.Context) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.AppointmentService.RestoreCSV(data)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
