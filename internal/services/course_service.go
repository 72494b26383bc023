package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/learnsphere/exam-service/internal/events"
	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/store"
	"github.com/learnsphere/exam-service/internal/validator"
)

// Defaults applied to the exam that is created alongside every course.
const (
	defaultExamQuestions = 5
	defaultExamTimeLimit = 30 // minutes
)

// CourseService manages courses, their modules and materials, the
// per-module question banks, and each course's paired exam config.
type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetByID(ctx context.Context, courseID string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, courseID string, req *UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, courseID string) error

	AddModule(ctx context.Context, courseID string, req *AddModuleRequest) (*models.Module, error)
	AddMaterial(ctx context.Context, courseID, moduleID string, req *AddMaterialRequest) (*models.Material, error)
	AddQuestion(ctx context.Context, courseID, moduleID string, req *AddQuestionRequest) (*models.Question, error)
	RemoveQuestion(ctx context.Context, courseID, moduleID, questionID string) error

	GetExam(ctx context.Context, examID string) (*models.Exam, error)
	UpdateExam(ctx context.Context, examID string, req *UpdateExamRequest) (*models.Exam, error)
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type AddModuleRequest struct {
	Title string `json:"title" validate:"required"`
}

type AddMaterialRequest struct {
	Type  models.MaterialType `json:"type" validate:"required,material_type"`
	Title string              `json:"title" validate:"required"`
	URL   string              `json:"url" validate:"required,url"`
}

type AddQuestionRequest struct {
	Type          models.QuestionType `json:"type" validate:"required,question_type"`
	Text          string              `json:"text" validate:"required"`
	Options       []string            `json:"options"`
	CorrectAnswer models.AnswerValue  `json:"correctAnswer"`
}

type UpdateExamRequest struct {
	Title              string `json:"title" validate:"required"`
	NumberOfQuestions  int    `json:"numberOfQuestions" validate:"min=0"`
	IsLocked           bool   `json:"isLocked"`
	TimeLimit          int    `json:"timeLimit" validate:"min=0"`
	RandomizeQuestions bool   `json:"randomizeQuestions"`
}

type courseService struct {
	store     *store.Store
	mirror    store.Mirror
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(st *store.Store, mirror store.Mirror, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		store:     st,
		mirror:    mirror,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Create stores a new course and its paired exam. The exam starts
// locked with the stock configuration until an admin tunes it.
func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	exam := models.Exam{
		ID:                 uuid.NewString(),
		Title:              req.Title + " Exam",
		NumberOfQuestions:  defaultExamQuestions,
		IsLocked:           true,
		TimeLimit:          defaultExamTimeLimit,
		RandomizeQuestions: true,
	}

	course := models.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ExamID:      exam.ID,
	}
	exam.CourseID = course.ID

	s.store.AddCourse(course)
	s.store.AddExam(exam)
	s.saveMirror(ctx, "create_course")

	s.publish(ctx, events.NewCourseCreatedEvent(course.ID, exam.ID, course.Title, time.Now()))

	s.logger.Info("Course created", "course_id", course.ID, "exam_id", exam.ID)
	return &course, nil
}

func (s *courseService) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}
	return &course, nil
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	return s.store.Courses(), nil
}

func (s *courseService) Update(ctx context.Context, courseID string, req *UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	course.Title = req.Title
	course.Description = req.Description
	course.ImageURL = req.ImageURL
	s.store.UpdateCourse(course)
	s.saveMirror(ctx, "update_course")

	return &course, nil
}

// Delete removes the course, its paired exam, and any recorded results
// for that exam.
func (s *courseService) Delete(ctx context.Context, courseID string) error {
	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return ErrCourseNotFound
	}

	s.store.DeleteCourse(courseID)
	if course.ExamID != "" {
		s.store.DeleteExam(course.ExamID)
		s.store.DeleteResultsByExam(course.ExamID)
	}
	s.saveMirror(ctx, "delete_course")

	s.logger.Info("Course deleted", "course_id", courseID, "exam_id", course.ExamID)
	return nil
}

// ===== MODULES, MATERIALS, QUESTIONS =====

func (s *courseService) AddModule(ctx context.Context, courseID string, req *AddModuleRequest) (*models.Module, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	module := models.Module{
		ID:    uuid.NewString(),
		Title: req.Title,
	}
	course.Modules = append(course.Modules, module)
	s.store.UpdateCourse(course)
	s.saveMirror(ctx, "add_module")

	return &module, nil
}

func (s *courseService) AddMaterial(ctx context.Context, courseID, moduleID string, req *AddMaterialRequest) (*models.Material, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	idx := moduleIndex(course, moduleID)
	if idx < 0 {
		return nil, ErrModuleNotFound
	}

	material := models.Material{
		ID:    uuid.NewString(),
		Type:  req.Type,
		Title: req.Title,
		URL:   req.URL,
	}
	course.Modules[idx].Materials = append(course.Modules[idx].Materials, material)
	s.store.UpdateCourse(course)
	s.saveMirror(ctx, "add_material")

	return &material, nil
}

func (s *courseService) AddQuestion(ctx context.Context, courseID, moduleID string, req *AddQuestionRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	question := models.Question{
		ID:            uuid.NewString(),
		Type:          req.Type,
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.validator.Question().ValidateQuestion(&question); err != nil {
		return nil, err
	}

	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	idx := moduleIndex(course, moduleID)
	if idx < 0 {
		return nil, ErrModuleNotFound
	}

	course.Modules[idx].Questions = append(course.Modules[idx].Questions, question)
	s.store.UpdateCourse(course)
	s.saveMirror(ctx, "add_question")

	s.logger.Info("Question added", "course_id", courseID, "module_id", moduleID, "question_id", question.ID)
	return &question, nil
}

func (s *courseService) RemoveQuestion(ctx context.Context, courseID, moduleID, questionID string) error {
	course, exists := s.store.CourseByID(courseID)
	if !exists {
		return ErrCourseNotFound
	}

	idx := moduleIndex(course, moduleID)
	if idx < 0 {
		return ErrModuleNotFound
	}

	questions := course.Modules[idx].Questions
	for i, q := range questions {
		if q.ID == questionID {
			course.Modules[idx].Questions = append(questions[:i], questions[i+1:]...)
			s.store.UpdateCourse(course)
			s.saveMirror(ctx, "remove_question")
			return nil
		}
	}
	return ErrQuestionNotFound
}

// ===== EXAM CONFIG =====

func (s *courseService) GetExam(ctx context.Context, examID string) (*models.Exam, error) {
	exam, exists := s.store.ExamByID(examID)
	if !exists {
		return nil, ErrExamNotFound
	}
	return &exam, nil
}

func (s *courseService) UpdateExam(ctx context.Context, examID string, req *UpdateExamRequest) (*models.Exam, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, validationFailed(err)
	}

	exam, exists := s.store.ExamByID(examID)
	if !exists {
		return nil, ErrExamNotFound
	}

	exam.Title = req.Title
	exam.NumberOfQuestions = req.NumberOfQuestions
	exam.IsLocked = req.IsLocked
	exam.TimeLimit = req.TimeLimit
	exam.RandomizeQuestions = req.RandomizeQuestions
	s.store.UpdateExam(exam)
	s.saveMirror(ctx, "update_exam")

	s.logger.Info("Exam config updated", "exam_id", examID)
	return &exam, nil
}

func moduleIndex(course models.Course, moduleID string) int {
	for i, m := range course.Modules {
		if m.ID == moduleID {
			return i
		}
	}
	return -1
}

func (s *courseService) publish(ctx context.Context, event *events.ExamEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExamEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func (s *courseService) saveMirror(ctx context.Context, op string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Save(ctx, s.store.Snapshot()); err != nil {
		s.logger.Error("Failed to mirror store snapshot", "operation", op, "error", err)
	}
}
