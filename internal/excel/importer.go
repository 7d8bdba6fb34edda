package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sakura/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath                 string // Path to the Excel or CSV file
	LevelColumn              string // Column with the JLPT level
	TypeColumn               string // Column with the item type
	QuestionColumn           string // Column with the kanji, word or grammar point
	ReadingColumn            string // Column with the reading
	MeaningColumn            string // Column with the meaning
	ExampleColumn            string // Column with the example sentence
	ExampleTranslationColumn string // Column with the example translation
	SheetName                string // Name of the sheet to import, the first sheet when empty
	StartRow                 int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		LevelColumn:              "A",
		TypeColumn:               "B",
		QuestionColumn:           "C",
		ReadingColumn:            "D",
		MeaningColumn:            "E",
		ExampleColumn:            "F",
		ExampleTranslationColumn: "G",
		StartRow:                 2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	Items          []models.StudyItem
	TotalProcessed int
	Skipped        int
	Errors         []string
}

// ImportItems reads study items from an Excel or CSV file. Row problems are
// collected in the result; only an unreadable file is an error.
func ImportItems(config ImportConfig) (*ImportResult, error) {
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports items from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		processRow(row, config, result, i+1)
	}
	return result, nil
}

// importFromCSV imports items from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		processRow(row, config, result, rowNum)
	}
	return result, nil
}

// processRow turns one spreadsheet row into a study item
func processRow(row []string, config ImportConfig, result *ImportResult, rowNum int) {
	if isBlank(row) {
		result.Skipped++
		return
	}
	result.TotalProcessed++

	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	item := models.StudyItem{
		ID:                 fmt.Sprintf("import_%d", rowNum),
		Level:              models.Level(strings.ToUpper(cell(config.LevelColumn))),
		Type:               models.ItemType(strings.ToLower(cell(config.TypeColumn))),
		Question:           cell(config.QuestionColumn),
		Reading:            cell(config.ReadingColumn),
		Meaning:            cell(config.MeaningColumn),
		Example:            cell(config.ExampleColumn),
		ExampleTranslation: cell(config.ExampleTranslationColumn),
	}

	if err := validateItem(item); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	result.Items = append(result.Items, item)
}

func validateItem(item models.StudyItem) error {
	if !item.Level.Valid() {
		return fmt.Errorf("unknown level %q", item.Level)
	}
	if !item.Type.Valid() {
		return fmt.Errorf("unknown type %q", item.Type)
	}
	if item.Question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if item.Meaning == "" {
		return fmt.Errorf("meaning cannot be empty")
	}
	return nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
