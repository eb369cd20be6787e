package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		assert.NoError(t, err)
		assert.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestLoadBytes(t *testing.T) {
	data := workbook(t, "Sheet1", [][]string{
		{"Ведомость по партиям товаров на складах"},
		{"Склад №1 (осн.)"},
		{"Пиво А", "", "100"},
	})

	rows, err := New().LoadBytes(context.Background(), data)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, "Склад №1 (осн.)", rows[1].First())
	assert.Equal(t, "100", rows[2].Cell(2))
}

func TestLoadFile(t *testing.T) {
	data := workbook(t, "Sheet1", [][]string{{"Напитки"}})
	path := filepath.Join(t.TempDir(), "report.xlsx")
	assert.NoError(t, os.WriteFile(path, data, 0o644))

	rows, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(rows))
	assert.Equal(t, "Напитки", rows[0].First())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), "no-such-file.xlsx")
	assert.Error(t, err)
}

func TestLoadNamedSheet(t *testing.T) {
	data := workbook(t, "Отчет", [][]string{{"Напитки"}})

	rows, err := New(WithSheet("Отчет")).LoadBytes(context.Background(), data)
	assert.NoError(t, err)
	assert.Equal(t, "Напитки", rows[0].First())
}

func TestLoadUnknownSheet(t *testing.T) {
	data := workbook(t, "Sheet1", [][]string{{"Напитки"}})

	_, err := New(WithSheet("Нет такого")).LoadBytes(context.Background(), data)
	assert.Error(t, err)
}

func TestLoadGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.txt")
	assert.NoError(t, os.WriteFile(path, []byte("Напитки\n\n  Бакалея  \n"), 0o644))

	groups, err := LoadGroups(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, groups.Len())
	assert.True(t, groups.Contains("напитки"))
	assert.True(t, groups.Contains("Бакалея"))
}

func TestLoadGroupsMissingFile(t *testing.T) {
	groups, err := LoadGroups(filepath.Join(t.TempDir(), "absent.txt"))
	assert.NoError(t, err)
	assert.Equal(t, 0, groups.Len())
}
