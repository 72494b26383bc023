package services

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/learnsphere/exam-service/internal/events"
	"github.com/learnsphere/exam-service/internal/exam"
	"github.com/learnsphere/exam-service/internal/models"
	"github.com/learnsphere/exam-service/internal/store"
)

// ExamService runs the exam lifecycle: assembling a question set for a
// session, collecting answers, and recording the graded result.
type ExamService interface {
	StartSession(ctx context.Context, examID, userID string) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	SaveAnswer(ctx context.Context, sessionID, questionID string, answer models.AnswerValue) error
	Submit(ctx context.Context, sessionID string) (*models.ExamResult, error)
	TimeRemaining(ctx context.Context, sessionID string) (int, error)

	GetResult(ctx context.Context, examID, userID string) (*models.ExamResult, error)
	ResultsByExam(ctx context.Context, examID string) ([]models.ExamResult, error)
}

// SessionQuestion is a question as shown to the exam taker. The correct
// answer never leaves the service.
type SessionQuestion struct {
	ID      string              `json:"id"`
	Type    models.QuestionType `json:"type"`
	Text    string              `json:"text"`
	Options []string            `json:"options,omitempty"`
}

// SessionView is the taker-facing state of a session.
type SessionView struct {
	SessionID     string            `json:"sessionId"`
	ExamID        string            `json:"examId"`
	ExamTitle     string            `json:"examTitle"`
	State         exam.State        `json:"state"`
	Questions     []SessionQuestion `json:"questions"`
	TimeLimit     int               `json:"timeLimit"`     // minutes, 0 means untimed
	TimeRemaining int               `json:"timeRemaining"` // seconds
}

type sessionEntry struct {
	session *exam.Session
	manual  atomic.Bool // set before a user-initiated submit, to tag the event
}

type examService struct {
	store     *store.Store
	mirror    store.Mirror
	publisher events.EventPublisher
	logger    *slog.Logger

	grader    *exam.Grader
	scheduler exam.Scheduler
	newRand   func() *rand.Rand

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	active   map[string]string // examID+"|"+userID -> sessionID
}

// ExamServiceOptions carries the injectable pieces of the exam service.
// Zero values fall back to production defaults.
type ExamServiceOptions struct {
	Grader    *exam.Grader
	Scheduler exam.Scheduler
	NewRand   func() *rand.Rand
}

func NewExamService(st *store.Store, mirror store.Mirror, publisher events.EventPublisher, logger *slog.Logger, opts ExamServiceOptions) ExamService {
	if opts.Grader == nil {
		opts.Grader = exam.NewGrader()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = exam.NewTimerScheduler()
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &examService{
		store:     st,
		mirror:    mirror,
		publisher: publisher,
		logger:    logger,
		grader:    opts.Grader,
		scheduler: opts.Scheduler,
		newRand:   opts.NewRand,
		sessions:  make(map[string]*sessionEntry),
		active:    make(map[string]string),
	}
}

// StartSession assembles the question set for this attempt and starts
// the countdown. A locked exam requires every course material to be
// completed first; admins bypass the lock.
func (s *examService) StartSession(ctx context.Context, examID, userID string) (*SessionView, error) {
	user, exists := s.store.UserByID(userID)
	if !exists {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	ex, exists := s.store.ExamByID(examID)
	if !exists {
		return nil, ErrExamNotFound
	}

	course, exists := s.store.CourseByID(ex.CourseID)
	if !exists {
		return nil, ErrCourseNotFound
	}

	if ex.IsLocked && user.Role != models.RoleAdmin {
		if !s.materialsCompleted(course, userID) {
			return nil, ErrExamLocked
		}
	}

	s.mu.Lock()
	if sessionID, ok := s.active[sessionKey(examID, userID)]; ok {
		if entry, found := s.sessions[sessionID]; found && entry.session.State() == exam.StateInProgress {
			s.mu.Unlock()
			return nil, ErrSessionActive
		}
	}
	s.mu.Unlock()

	questions := exam.SelectQuestions(course.QuestionPool(), ex.NumberOfQuestions, ex.RandomizeQuestions, s.newRand())

	entry := &sessionEntry{}
	sessionID := uuid.NewString()
	entry.session = exam.NewSession(sessionID, ex, userID, questions, s.grader, s.scheduler, func(result models.ExamResult) {
		s.recordResult(result, sessionID, !entry.manual.Load())
	})

	s.mu.Lock()
	s.sessions[sessionID] = entry
	s.active[sessionKey(examID, userID)] = sessionID
	s.mu.Unlock()

	entry.session.Start()

	s.publish(ctx, events.NewSessionStartedEvent(sessionID, examID, userID, len(questions), ex.TimeLimit, time.Now()))
	s.logger.Info("Exam session started",
		"session_id", sessionID,
		"exam_id", examID,
		"user_id", userID,
		"question_count", len(questions))

	return s.view(entry.session), nil
}

func (s *examService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(entry.session), nil
}

func (s *examService) SaveAnswer(ctx context.Context, sessionID, questionID string, answer models.AnswerValue) error {
	entry, err := s.entry(sessionID)
	if err != nil {
		return err
	}
	return entry.session.SetAnswer(questionID, answer)
}

// Submit grades the session on the user's initiative. Submitting a
// session the countdown already graded returns the stored result.
func (s *examService) Submit(ctx context.Context, sessionID string) (*models.ExamResult, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.manual.Store(true)
	result, performed := entry.session.Submit()
	if !performed {
		stored, ok := entry.session.Result()
		if !ok {
			return nil, exam.ErrSessionNotActive
		}
		return &stored, nil
	}
	return &result, nil
}

func (s *examService) TimeRemaining(ctx context.Context, sessionID string) (int, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return 0, err
	}
	return entry.session.TimeRemaining(), nil
}

// ===== RESULTS =====

func (s *examService) GetResult(ctx context.Context, examID, userID string) (*models.ExamResult, error) {
	result, exists := s.store.Result(examID, userID)
	if !exists {
		return nil, ErrResultNotFound
	}
	return &result, nil
}

func (s *examService) ResultsByExam(ctx context.Context, examID string) ([]models.ExamResult, error) {
	if _, exists := s.store.ExamByID(examID); !exists {
		return nil, ErrExamNotFound
	}
	return s.store.ResultsByExam(examID), nil
}

// ===== INTERNAL =====

// recordResult is the session's onGraded callback. It runs exactly once
// per session, on whichever path performed the grading.
func (s *examService) recordResult(result models.ExamResult, sessionID string, autoTimeout bool) {
	s.store.UpsertResult(result)

	s.mu.Lock()
	delete(s.active, sessionKey(result.ExamID, result.UserID))
	s.mu.Unlock()

	ctx := context.Background()
	if s.mirror != nil {
		if err := s.mirror.Save(ctx, s.store.Snapshot()); err != nil {
			s.logger.Error("Failed to mirror store snapshot", "operation", "record_result", "error", err)
		}
	}

	s.publish(ctx, events.NewExamSubmittedEvent(sessionID, result.ExamID, result.UserID, result.Score, autoTimeout, result.Timestamp))
	s.publish(ctx, events.NewResultRecordedEvent(result.ExamID, result.UserID, result.Score, result.Timestamp))

	s.logger.Info("Exam graded",
		"session_id", sessionID,
		"exam_id", result.ExamID,
		"user_id", result.UserID,
		"score", result.Score,
		"auto_timeout", autoTimeout)
}

func (s *examService) materialsCompleted(course models.Course, userID string) bool {
	progress := s.store.Progress(userID)
	for _, materialID := range course.MaterialIDs() {
		if !progress.CompletedMaterials[materialID] {
			return false
		}
	}
	return true
}

func (s *examService) entry(sessionID string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

func (s *examService) view(sess *exam.Session) *SessionView {
	questions := sess.Questions()
	out := make([]SessionQuestion, len(questions))
	for i, q := range questions {
		out[i] = SessionQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Options: q.Options,
		}
	}

	ex, _ := s.store.ExamByID(sess.ExamID())
	return &SessionView{
		SessionID:     sess.ID(),
		ExamID:        sess.ExamID(),
		ExamTitle:     ex.Title,
		State:         sess.State(),
		Questions:     out,
		TimeLimit:     ex.TimeLimit,
		TimeRemaining: sess.TimeRemaining(),
	}
}

func (s *examService) publish(ctx context.Context, event *events.ExamEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExamEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func sessionKey(examID, userID string) string {
	return examID + "|" + userID
}
