package backup

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"embtrack/cmd/internal/domain/entity"
	"embtrack/cmd/internal/utils"
)

// Header is the fixed column layout of a backup file. Restore rejects
// any file whose first row differs from it.
var Header = []string{
	"id",
	"applicant_name",
	"reference_number",
	"embassy_or_city",
	"apply_date",
	"appointment_received_date",
	"interview_date",
	"notes",
}

// ErrHeaderMismatch marks an uploaded file whose header row is not the
// backup layout. Nothing is restored from such a file.
var ErrHeaderMismatch = errors.New("backup header does not match the expected column layout")

// Export renders the record set as a CSV backup: one header row, one row
// per record, dates as YYYY-MM-DD, empty cells for missing values.
// Rows keep the order of the input slice.
func Export(records []*entity.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.ID),
			textCell(rec.ApplicantName),
			textCell(rec.ReferenceNumber),
			textCell(rec.EmbassyOrCity),
			dateCell(rec.ApplyDate),
			dateCell(rec.ReceivedDate),
			dateCell(rec.InterviewDate),
			textCell(rec.Notes),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads a backup produced by Export and returns the records it
// contains. The id column is ignored; the store assigns fresh ids on
// restore. Any bad row aborts the whole parse so a restore is all-or-nothing.
func Parse(data []byte) ([]*entity.Appointment, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(Header)

	head, err := r.Read()
	if err != nil {
		return nil, ErrHeaderMismatch
	}
	if !equalHeader(head) {
		return nil, ErrHeaderMismatch
	}

	var records []*entity.Appointment
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := &entity.Appointment{
			ApplicantName:   textValue(row[1]),
			ReferenceNumber: textValue(row[2]),
			EmbassyOrCity:   textValue(row[3]),
			Notes:           textValue(row[7]),
		}

		if rec.ApplyDate, err = dateValue(row[4]); err != nil {
			return nil, fmt.Errorf("line %d: bad apply_date %q", line, row[4])
		}
		if rec.ReceivedDate, err = dateValue(row[5]); err != nil {
			return nil, fmt.Errorf("line %d: bad appointment_received_date %q", line, row[5])
		}
		if rec.InterviewDate, err = dateValue(row[6]); err != nil {
			return nil, fmt.Errorf("line %d: bad interview_date %q", line, row[6])
		}

		records = append(records, rec)
	}
	return records, nil
}

func equalHeader(head []string) bool {
	if len(head) != len(Header) {
		return false
	}
	for i, name := range Header {
		if head[i] != name {
			return false
		}
	}
	return true
}

func textCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateCell(millis *int64) string {
	if millis == nil {
		return ""
	}
	return utils.FormatDate(*millis)
}

func textValue(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func dateValue(cell string) (*int64, error) {
	if cell == "" {
		return nil, nil
	}
	millis, err := utils.ParseDate(cell)
	if err != nil {
		return nil, err
	}
	return &millis, nil
}
