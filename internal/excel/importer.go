package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/example/quizkit/pkg/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	QuestionColumn string // Column with the question text
	AnswerColumn   string // Column with the answer text
	SheetName      string // Name of the sheet to import
	SkipHeader     bool   // Skip the header row
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		QuestionColumn: "A",
		AnswerColumn:   "B",
		SheetName:      "Sheet1",
		SkipHeader:     true,
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportQuestions reads question/answer pairs from an Excel or CSV
// file. The file type is decided by the filename extension.
func ImportQuestions(r io.Reader, filename string, config ImportConfig) ([]models.KitQuestion, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return importFromExcel(r, config)
	case ".csv":
		return importFromCSV(r, config)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// importFromExcel reads rows from the configured sheet
func importFromExcel(r io.Reader, config ImportConfig) ([]models.KitQuestion, *ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %v", config.SheetName, err)
	}

	questionCol, err := excelize.ColumnNameToNumber(config.QuestionColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid question column %s: %v", config.QuestionColumn, err)
	}
	answerCol, err := excelize.ColumnNameToNumber(config.AnswerColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid answer column %s: %v", config.AnswerColumn, err)
	}

	startRow := config.StartRow
	if startRow < 1 {
		startRow = 1
	}

	result := &ImportResult{}
	var questions []models.KitQuestion

	for i := startRow - 1; i < len(rows); i++ {
		result.TotalProcessed++
		question := cellAt(rows[i], questionCol-1)
		answer := cellAt(rows[i], answerCol-1)
		appendQuestion(&questions, result, question, answer, i+1)
	}

	return questions, result, nil
}

// importFromCSV reads comma-separated rows, first column question,
// second column answer
func importFromCSV(r io.Reader, config ImportConfig) ([]models.KitQuestion, *ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	var questions []models.KitQuestion

	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv: %v", err)
		}

		rowNum++
		if config.SkipHeader && rowNum == 1 {
			continue
		}

		result.TotalProcessed++
		question := cellAt(record, 0)
		answer := cellAt(record, 1)
		appendQuestion(&questions, result, question, answer, rowNum)
	}

	return questions, result, nil
}

// appendQuestion validates a parsed pair and records it or the reason
// it was skipped
func appendQuestion(questions *[]models.KitQuestion, result *ImportResult, question, answer string, row int) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if question == "" || answer == "" {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing question or answer", row))
		return
	}

	*questions = append(*questions, models.KitQuestion{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
		Position: len(*questions),
	})
	result.Created++
}

// cellAt returns the cell at index or an empty string for short rows
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
