package directory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/xuri/excelize/v2"
)

var ErrUndecodableSpreadsheet = errors.New("undecodable directory spreadsheet")

// Column positions of the directory sheet
const (
	columnPayroll = iota
	columnSurname1
	columnSurname2
	columnFirstName
	columnPhone1
	columnPhone2
	columnPhone3
)

// Directory is the staff phone directory spreadsheet. Only the first sheet is read.
type Directory struct {
	Entries []ctdf.PhonebookEntry
	Skipped int
}

func (d *Directory) ParseFile(reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUndecodableSpreadsheet, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%w: no sheets", ErrUndecodableSpreadsheet)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUndecodableSpreadsheet, err)
	}

	d.Entries, d.Skipped = ParseGrid(rows)

	return nil
}

func (d *Directory) Import(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource) error {
	duplicates := 0
	for _, entry := range d.Entries {
		if !builder.AddPhonebookEntry(entry) {
			duplicates++
		}
	}

	log.Info().
		Str("dataset", datasource.Dataset).
		Int("entries", len(d.Entries)).
		Int("duplicates", duplicates).
		Int("skipped", d.Skipped).
		Msg("Imported directory")

	return nil
}

// ParseGrid maps the cells of a sheet onto phonebook entries, skipping the header row
// and rows without a payroll number
func ParseGrid(rows [][]string) ([]ctdf.PhonebookEntry, int) {
	var entries []ctdf.PhonebookEntry
	skipped := 0

	for index, row := range rows {
		if index == 0 {
			continue
		}

		payroll := cell(row, columnPayroll)
		if payroll == "" {
			skipped++
			continue
		}

		entry := ctdf.PhonebookEntry{
			Payroll:   payroll,
			Surname1:  cell(row, columnSurname1),
			Surname2:  cell(row, columnSurname2),
			FirstName: cell(row, columnFirstName),
			Phones:    []string{},
		}

		for _, column := range []int{columnPhone1, columnPhone2, columnPhone3} {
			if phone := cell(row, column); phone != "" {
				entry.Phones = append(entry.Phones, phone)
			}
		}

		entries = append(entries, entry)
	}

	return entries, skipped
}

func cell(row []string, column int) string {
	if column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}
