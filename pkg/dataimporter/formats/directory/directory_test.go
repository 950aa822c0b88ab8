package directory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/xuri/excelize/v2"
)

func TestParseGrid(t *testing.T) {
	entries, skipped := ParseGrid([][]string{
		{"Matricula", "Cognom 1", "Cognom 2", "Nom", "Telefon 1", "Telefon 2", "Telefon 3"},
		{"12345", "Garcia", "Puig", "Joan", " 600111222 ", "", "933000000"},
		{"", "Nobody", "", "Nobody"},
		{"23456", "Soler", "", "Anna"},
	})

	assert.Equal(t, 1, skipped)
	require.Len(t, entries, 2)
	assert.Equal(t, ctdf.PhonebookEntry{
		Payroll:   "12345",
		Surname1:  "Garcia",
		Surname2:  "Puig",
		FirstName: "Joan",
		Phones:    []string{"600111222", "933000000"},
	}, entries[0])
	assert.Equal(t, []string{}, entries[1].Phones)
}

func TestParseFile(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]interface{}{"Matricula", "Cognom 1", "Cognom 2", "Nom", "Telefon 1"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]interface{}{"12345", "Garcia", "Puig", "Joan", "600111222"}))

	buffer, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	directory := &Directory{}
	require.NoError(t, directory.ParseFile(bytes.NewReader(buffer.Bytes())))
	require.Len(t, directory.Entries, 1)

	builder := ctdf.NewDatabaseBuilder()
	require.NoError(t, directory.Import(builder, &ctdf.DataSource{Dataset: "directory"}))
	db := builder.Build()

	entry, found := db.PhonebookEntry("12345")
	require.True(t, found)
	assert.Equal(t, "Joan Garcia Puig", entry.FullName())
	assert.Equal(t, []string{"600111222"}, entry.Phones)
}

func TestParseFileUndecodable(t *testing.T) {
	directory := &Directory{}
	err := directory.ParseFile(strings.NewReader("not a spreadsheet"))
	assert.ErrorIs(t, err, ErrUndecodableSpreadsheet)
}
