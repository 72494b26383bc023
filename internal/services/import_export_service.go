package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/store"
	"github.com/learnsphere/exam-service/internal/validator"
)

// ImportExportService handles bulk question import into a module's bank
// and exam result exports.
type ImportExportService interface {
	ImportQuestionsFromFile(ctx context.Context, courseID, moduleID string, reader io.Reader, filename string) (*models.ImportSummary, error)
	ImportQuestionsFromCSV(ctx context.Context, courseID, moduleID string, reader io.Reader) (*models.ImportSummary, error)
	ImportQuestionsFromExcel(ctx context.Context, courseID, moduleID string, reader io.Reader) (*models.ImportSummary, error)

	ExportQuestionsToCSV(ctx context.Context, courseID string) ([]byte, error)
	ExportResultsToExcel(ctx context.Context, examID string) ([]byte, error)
}

type importExportService struct {
	store     *store.Store
	mirror    store.Mirror
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportExportService(st *store.Store, mirror store.Mirror, logger *slog.Logger, validator *validator.Validator) ImportExportService {
	return &importExportService{
		store:     st,
		mirror:    mirror,
		logger:    logger,
		validator: validator,
	}
}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, courseID, moduleID string, reader io.Reader, filename string) (*models.ImportSummary, error) {
	s.logger.Info("Starting question import", "filename", filename, "course_id", courseID, "module_id", moduleID)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, courseID, moduleID, reader)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, courseID, moduleID, reader)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, courseID, moduleID string, reader io.Reader) (*models.ImportSummary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return s.importRows(ctx, courseID, moduleID, records)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, courseID, moduleID string, reader io.Reader) (*models.ImportSummary, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", "")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importRows(ctx, courseID, moduleID, rows)
}

func (s *importExportService) importRows(ctx context.Context, courseID, moduleID string, rows [][]string) (*models.ImportSummary, error) {
	start := time.Now()

	if len(rows) < 2 {
		return nil, NewValidationError("file", "file must have a header row and at least one data row", "")
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"question_type", "question_text", "correct_answer"} {
		if _, exists := headerMap[col]; !exists {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}
	idx := moduleIndex(course, moduleID)
	if idx < 0 {
		return nil, ErrModuleNotFound
	}

	summary := &models.ImportSummary{TotalRows: len(rows) - 1}
	var questions []models.Question

	for rowIndex, record := range rows[1:] {
		question, rowErrors := s.parseRow(record, headerMap, rowIndex+2)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
		} else {
			questions = append(questions, *question)
			summary.CreatedQuestions = append(summary.CreatedQuestions, question.ID)
			summary.SuccessCount++
		}
		summary.ProcessedRows++
	}

	if len(questions) > 0 {
		course.Modules[idx].Questions = append(course.Modules[idx].Questions, questions...)
		s.store.UpdateCourse(course)
		if s.mirror != nil {
			if err := s.mirror.Save(ctx, s.store.Snapshot()); err != nil {
				s.logger.Error("Failed to mirror store snapshot", "operation", "import_questions", "error", err)
			}
		}
	}

	summary.ProcessingTime = time.Since(start)

	s.logger.Info("Question import completed",
		"course_id", courseID,
		"module_id", moduleID,
		"total_rows", summary.TotalRows,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)

	return summary, nil
}

// parseRow builds one question from a data row. The row number is
// 1-based and includes the header, matching what a user sees in a
// spreadsheet.
func (s *importExportService) parseRow(record []string, headerMap map[string]int, rowNum int) (*models.Question, []models.ImportValidationError) {
	var errors []models.ImportValidationError

	getColumn := func(name string) string {
		if index, exists := headerMap[name]; exists && index < len(record) {
			return strings.TrimSpace(record[index])
		}
		return ""
	}

	typeStr := getColumn("question_type")
	if typeStr == "" {
		errors = append(errors, models.ImportValidationError{
			Row: rowNum, Field: "question_type", Message: "required field",
		})
		return nil, errors
	}
	questionType := models.QuestionType(strings.ToUpper(typeStr))

	text := getColumn("question_text")
	if text == "" {
		errors = append(errors, models.ImportValidationError{
			Row: rowNum, Field: "question_text", Message: "required field",
		})
		return nil, errors
	}

	var options []string
	for _, colName := range []string{"option_a", "option_b", "option_c", "option_d"} {
		if option := getColumn(colName); option != "" {
			options = append(options, option)
		}
	}

	correctAnswer, answerErr := parseCorrectAnswer(questionType, getColumn("correct_answer"), options, rowNum)
	if answerErr != nil {
		errors = append(errors, *answerErr)
		return nil, errors
	}

	question := models.Question{
		ID:            uuid.NewString(),
		Type:          questionType,
		Text:          text,
		CorrectAnswer: correctAnswer,
	}
	if questionType == models.MultipleChoice {
		question.Options = options
	}

	if err := s.validator.Question().ValidateQuestion(&question); err != nil {
		errors = append(errors, models.ImportValidationError{
			Row: rowNum, Field: "question", Message: err.Error(),
		})
		return nil, errors
	}

	return &question, nil
}

// parseCorrectAnswer interprets the correct_answer column per question
// type. Multiple choice accepts either a letter (A-D) or the literal
// option text.
func parseCorrectAnswer(questionType models.QuestionType, raw string, options []string, rowNum int) (models.AnswerValue, *models.ImportValidationError) {
	switch questionType {
	case models.TrueFalse:
		switch strings.ToLower(raw) {
		case "true":
			return models.BoolAnswer(true), nil
		case "false":
			return models.BoolAnswer(false), nil
		default:
			return models.AnswerValue{}, &models.ImportValidationError{
				Row: rowNum, Field: "correct_answer", Message: "must be 'true' or 'false'", Value: raw,
			}
		}
	case models.MultipleChoice:
		if len(raw) == 1 && raw[0] >= 'A' && raw[0] <= 'D' {
			index := int(raw[0] - 'A')
			if index >= len(options) {
				return models.AnswerValue{}, &models.ImportValidationError{
					Row: rowNum, Field: "correct_answer", Message: "letter does not match any option", Value: raw,
				}
			}
			return models.StringAnswer(options[index]), nil
		}
		return models.StringAnswer(raw), nil
	default:
		return models.StringAnswer(raw), nil
	}
}

// ===== EXPORT OPERATIONS =====

var exportHeaders = []string{
	"Question Type", "Question Text", "Option A", "Option B", "Option C", "Option D", "Correct Answer", "Module",
}

// ExportQuestionsToCSV writes the full question bank of a course in the
// same column layout the importer reads.
func (s *importExportService) ExportQuestionsToCSV(ctx context.Context, courseID string) ([]byte, error) {
	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, module := range course.Modules {
		for _, question := range module.Questions {
			if err := writer.Write(questionToRow(question, module.Title)); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportResultsToExcel builds an XLSX workbook with one row per
// recorded result for the exam.
func (s *importExportService) ExportResultsToExcel(ctx context.Context, examID string) ([]byte, error) {
	ex, exists := s.store.ExamByID(examID)
	if !exists {
		return nil, ErrExamNotFound
	}

	results := s.store.ResultsByExam(examID)

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"User ID", "User Name", "Exam", "Score (%)", "Answered Questions", "Submitted At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, result := range results {
		userName := ""
		if user, ok := s.store.UserByID(result.UserID); ok {
			userName = user.Name
		}

		row := []interface{}{
			result.UserID,
			userName,
			ex.Title,
			result.Score,
			len(result.Answers),
			result.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported exam results", "exam_id", examID, "result_count", len(results))
	return buf.Bytes(), nil
}

func questionToRow(question models.Question, moduleTitle string) []string {
	row := make([]string, len(exportHeaders))
	row[0] = string(question.Type)
	row[1] = question.Text
	for i, option := range question.Options {
		if i < 4 {
			row[2+i] = option
		}
	}
	row[6] = question.CorrectAnswer.String()
	row[7] = moduleTitle
	return row
}
