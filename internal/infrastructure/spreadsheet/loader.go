package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/xuri/excelize/v2"
)

// ParticipantLoader reads participant rows from xlsx workbooks. The first
// worksheet is used and its header row must name the columns name, email,
// phone and ageGroup. Rows missing any of those values are skipped.
type ParticipantLoader struct{}

func NewParticipantLoader() *ParticipantLoader {
	return &ParticipantLoader{}
}

// LoadFromFile parses participants from an xlsx file on disk.
func (l *ParticipantLoader) LoadFromFile(path string) ([]*domain.Participant, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return l.parseWorkbook(f)
}

// LoadFromReader parses participants from an uploaded xlsx stream.
func (l *ParticipantLoader) LoadFromReader(r io.Reader) ([]*domain.Participant, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	return l.parseWorkbook(f)
}

func (l *ParticipantLoader) parseWorkbook(f *excelize.File) ([]*domain.Participant, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := headerIndex(rows[0])
	participants := make([]*domain.Participant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		input, ok := rowToInput(row, columns)
		if !ok {
			continue
		}
		participants = append(participants, domain.NewParticipant(input))
	}

	return participants, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func rowToInput(row []string, columns map[string]int) (domain.ParticipantInput, bool) {
	input := domain.ParticipantInput{
		Name:     cell(row, columns, "name"),
		Email:    cell(row, columns, "email"),
		Phone:    cell(row, columns, "phone"),
		AgeGroup: cell(row, columns, "ageGroup"),
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.AgeGroup == "" {
		return domain.ParticipantInput{}, false
	}
	return input, true
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
