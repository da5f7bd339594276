package service

import (
	"errors"
	"sort"
	"strings"

	"embtrack/cmd/internal/backup"
	"embtrack/cmd/internal/domain/entity"
	"embtrack/cmd/internal/utils"
	"embtrack/cmd/internal/utils/apierror"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type AppointmentRepository interface {
	Save(appointment *entity.Appointment) error
	SaveAll(appointments []*entity.Appointment) error
	FindAll() ([]*entity.Appointment, error)
	FindByID(id int) (*entity.Appointment, error)
	Delete(appointment *entity.Appointment) error
	DeleteAll() error
}

// AppointmentRequest carries the add/edit form. Every field is optional;
// dates must be YYYY-MM-DD when present.
type AppointmentRequest struct {
	ApplicantName   string `json:"applicant_name" validate:"max=128"`
	ReferenceNumber string `json:"reference_number" validate:"max=64"`
	EmbassyOrCity   string `json:"embassy_or_city" validate:"max=128"`
	ApplyDate       string `json:"apply_date" validate:"isodate"`
	ReceivedDate    string `json:"appointment_received_date" validate:"isodate"`
	InterviewDate   string `json:"interview_date" validate:"isodate"`
	Notes           string `json:"notes" validate:"max=2000"`
}

type AppointmentResponse struct {
	ID              int     `json:"id"`
	ApplicantName   *string `json:"applicant_name"`
	ReferenceNumber *string `json:"reference_number"`
	EmbassyOrCity   *string `json:"embassy_or_city"`
	ApplyDate       *string `json:"apply_date"`
	ReceivedDate    *string `json:"appointment_received_date"`
	InterviewDate   *string `json:"interview_date"`
	Notes           *string `json:"notes"`
	DaysToInterview *int    `json:"days_to_interview"`
	CreatedAt       string  `json:"created_at"`
}

type RestoreResponse struct {
	Restored int `json:"restored"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	Validate        *validator.Validate
}

func NewAppointmentService(apptRepo AppointmentRepository, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, Validate: validate}
}

// GetAppointments lists all records in display order, optionally filtered by
// a case-insensitive substring over the text fields and/or restricted to
// records that have an interview date.
func (a *DefaultAppointmentService) GetAppointments(query string, interviewOnly bool) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAll()
	if err != nil {
		log.Errorf("failed to list appointments: %v", err)
		return nil, apierror.StorageUnavailableError
	}
	sortForDisplay(appts)

	response := make([]*AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		if interviewOnly && appt.InterviewDate == nil {
			continue
		}
		if query != "" && !matchesQuery(appt, query) {
			continue
		}
		response = append(response, toAppointmentResponse(appt))
	}
	return response, nil
}

func (a *DefaultAppointmentService) CreateAppointment(req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, apierr := a.fromRequest(req)
	if apierr != nil {
		return nil, apierr
	}

	appt.CreatedAt = utils.NowUTC()
	if err := a.AppointmentRepo.Save(appt); err != nil {
		log.Errorf("failed to save appointment: %v", err)
		return nil, apierror.StorageUnavailableError
	}
	return toAppointmentResponse(appt), nil
}

// UpdateAppointment replaces the business fields of one record. The id and
// creation timestamp never change.
func (a *DefaultAppointmentService) UpdateAppointment(id int, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	existing, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment by id %d: %v", id, err)
		return nil, apierror.StorageUnavailableError
	}
	if existing == nil {
		return nil, apierror.NotFoundError
	}

	appt, apierr := a.fromRequest(req)
	if apierr != nil {
		return nil, apierr
	}

	appt.ID = existing.ID
	appt.CreatedAt = existing.CreatedAt
	if err := a.AppointmentRepo.Save(appt); err != nil {
		log.Errorf("failed to update appointment %d: %v", id, err)
		return nil, apierror.StorageUnavailableError
	}
	return toAppointmentResponse(appt), nil
}

func (a *DefaultAppointmentService) DeleteAppointment(id int) apierror.ErrorResponse {
	appt, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment by id %d: %v", id, err)
		return apierror.StorageUnavailableError
	}
	if appt == nil {
		return apierror.NotFoundError
	}

	if err := a.AppointmentRepo.Delete(appt); err != nil {
		log.Errorf("failed to delete appointment %d: %v", id, err)
		return apierror.StorageUnavailableError
	}
	return nil
}

func (a *DefaultAppointmentService) DeleteAllAppointments() apierror.ErrorResponse {
	if err := a.AppointmentRepo.DeleteAll(); err != nil {
		log.Errorf("failed to delete all appointments: %v", err)
		return apierror.StorageUnavailableError
	}
	return nil
}

// ExportCSV snapshots the full record set as a CSV backup. Rows use the
// same ordering as GetAppointments.
func (a *DefaultAppointmentService) ExportCSV() ([]byte, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAll()
	if err != nil {
		log.Errorf("failed to load appointments for export: %v", err)
		return nil, apierror.StorageUnavailableError
	}
	sortForDisplay(appts)

	data, err := backup.Export(appts)
	if err != nil {
		log.Errorf("failed to render CSV export: %v", err)
		return nil, apierror.StorageUnavailableError
	}
	return data, nil
}

// RestoreCSV re-creates every record of a backup file with fresh ids.
// A bad header or a bad row aborts the restore before anything is written.
func (a *DefaultAppointmentService) RestoreCSV(data []byte) (*RestoreResponse, apierror.ErrorResponse) {
	records, err := backup.Parse(data)
	if err != nil {
		if errors.Is(err, backup.ErrHeaderMismatch) {
			return nil, apierror.NewMalformedInput("CSV format not recognized")
		}
		return nil, apierror.NewMalformedInput(err.Error())
	}

	now := utils.NowUTC()
	for _, rec := range records {
		rec.CreatedAt = now
	}

	if err := a.AppointmentRepo.SaveAll(records); err != nil {
		log.Errorf("failed to restore %d appointments: %v", len(records), err)
		return nil, apierror.StorageUnavailableError
	}
	return &RestoreResponse{Restored: len(records)}, nil
}

func (a *DefaultAppointmentService) fromRequest(req *AppointmentRequest) (*entity.Appointment, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	appt := &entity.Appointment{
		ApplicantName:   optionalText(req.ApplicantName),
		ReferenceNumber: optionalText(req.ReferenceNumber),
		EmbassyOrCity:   optionalText(req.EmbassyOrCity),
		Notes:           optionalText(req.Notes),
	}

	var apierr apierror.ErrorResponse
	if appt.ApplyDate, apierr = optionalDate("apply_date", req.ApplyDate); apierr != nil {
		return nil, apierr
	}
	if appt.ReceivedDate, apierr = optionalDate("appointment_received_date", req.ReceivedDate); apierr != nil {
		return nil, apierr
	}
	if appt.InterviewDate, apierr = optionalDate("interview_date", req.InterviewDate); apierr != nil {
		return nil, apierr
	}
	return appt, nil
}

// sortForDisplay orders records most recent interview date first, with
// undated records after all dated ones. Ties and the undated group fall
// back to newest-created first, then highest id. The order is recomputed
// on every read; at this scale a sorted index is not worth keeping.
func sortForDisplay(appts []*entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		a, b := appts[i], appts[j]
		switch {
		case a.InterviewDate != nil && b.InterviewDate == nil:
			return true
		case a.InterviewDate == nil && b.InterviewDate != nil:
			return false
		case a.InterviewDate != nil && *a.InterviewDate != *b.InterviewDate:
			return *a.InterviewDate > *b.InterviewDate
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return a.ID > b.ID
	})
}

func matchesQuery(appt *entity.Appointment, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []*string{appt.ApplicantName, appt.ReferenceNumber, appt.EmbassyOrCity, appt.Notes} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(field, iso string) (*int64, apierror.ErrorResponse) {
	if iso == "" {
		return nil, nil
	}
	millis, err := utils.ParseDate(iso)
	if err != nil {
		return nil, apierror.NewValidation(field, "isodate")
	}
	return &millis, nil
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              appt.ID,
		ApplicantName:   appt.ApplicantName,
		ReferenceNumber: appt.ReferenceNumber,
		EmbassyOrCity:   appt.EmbassyOrCity,
		ApplyDate:       formatDatePtr(appt.ApplyDate),
		ReceivedDate:    formatDatePtr(appt.ReceivedDate),
		InterviewDate:   formatDatePtr(appt.InterviewDate),
		Notes:           appt.Notes,
		DaysToInterview: daysToInterview(appt),
		CreatedAt:       utils.FormatEpoch(appt.CreatedAt),
	}
}

func formatDatePtr(millis *int64) *string {
	if millis == nil {
		return nil
	}
	s := utils.FormatDate(*millis)
	return &s
}

func daysToInterview(appt *entity.Appointment) *int {
	if appt.ApplyDate == nil || appt.InterviewDate == nil {
		return nil
	}
	days := utils.DaysBetween(*appt.ApplyDate, *appt.InterviewDate)
	return &days
}
