package exam

import (
	"errors"
	"sync"
	"time"

	"github.com/learnsphere/exam-service/internal/models"
)

// State is the lifecycle phase of a Session.
type State string

const (
	StateNotStarted State = "NotStarted"
	StateInProgress State = "InProgress"
	// StateGraded is terminal; no transition leaves it.
	StateGraded State = "Graded"
)

var ErrSessionNotActive = errors.New("exam session is not in progress")

// Session tracks one user taking one exam: the fixed question set, the
// in-progress answer map, and the countdown. All mutation is serialized
// through a single mutex; the terminal-state guard in submitLocked is
// the only mechanism preventing a manual submit and a timer expiry from
// both grading.
type Session struct {
	id        string
	exam      models.Exam
	userID    string
	questions []models.Question

	grader    *Grader
	scheduler Scheduler
	onGraded  func(models.ExamResult)

	mu         sync.Mutex
	state      State
	answers    map[string]models.AnswerValue
	remaining  int // seconds; meaningful only when the exam has a time limit
	cancelTick func()
	result     *models.ExamResult
}

// NewSession builds a session in the NotStarted state. The question set
// is computed once by the caller (via SelectQuestions) and never changes
// for the lifetime of the session. onGraded fires exactly once, after
// the transition to Graded, with the freshly graded result.
func NewSession(id string, ex models.Exam, userID string, questions []models.Question, grader *Grader, scheduler Scheduler, onGraded func(models.ExamResult)) *Session {
	return &Session{
		id:        id,
		exam:      ex,
		userID:    userID,
		questions: questions,
		grader:    grader,
		scheduler: scheduler,
		onGraded:  onGraded,
		state:     StateNotStarted,
		answers:   make(map[string]models.AnswerValue),
	}
}

// Start moves the session to InProgress and arms the countdown when the
// exam has a time limit. Starting an already started session is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNotStarted {
		return
	}
	s.state = StateInProgress
	if s.exam.TimeLimit > 0 {
		s.remaining = s.exam.TimeLimit * 60
		s.cancelTick = s.scheduler.Schedule(time.Second, s.tick)
	}
}

// SetAnswer records the submitted value for a question. Repeated calls
// for the same question overwrite the previous value.
func (s *Session) SetAnswer(questionID string, value models.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrSessionNotActive
	}
	s.answers[questionID] = value
	return nil
}

// Submit grades the session. The second return value reports whether
// this call performed the grading: submitting a session that is not
// InProgress is a no-op (not an error), because the countdown and a
// user action may race. When the session is already Graded the stored
// result is returned unchanged.
func (s *Session) Submit() (models.ExamResult, bool) {
	s.mu.Lock()
	if s.state != StateInProgress {
		var res models.ExamResult
		if s.result != nil {
			res = *s.result
		}
		s.mu.Unlock()
		return res, false
	}
	res := s.submitLocked()
	cb := s.onGraded
	s.mu.Unlock()

	if cb != nil {
		cb(res)
	}
	return res, true
}

// tick is the once-per-second countdown callback. Each tick either
// reschedules itself or, at zero, performs the one and only auto-submit.
// A tick that fires after the session was graded finds the terminal
// state and does nothing.
func (s *Session) tick() {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return
	}
	s.remaining--
	if s.remaining > 0 {
		s.cancelTick = s.scheduler.Schedule(time.Second, s.tick)
		s.mu.Unlock()
		return
	}
	res := s.submitLocked()
	cb := s.onGraded
	s.mu.Unlock()

	if cb != nil {
		cb(res)
	}
}

// submitLocked performs the InProgress -> Graded transition. The caller
// must hold s.mu and have verified the session is InProgress. Any
// outstanding tick is cancelled so no stray callback mutates a graded
// session.
func (s *Session) submitLocked() models.ExamResult {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	res := s.grader.Grade(s.questions, s.answers, s.exam.ID, s.userID)
	s.result = &res
	s.state = StateGraded
	return res
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() string { return s.userID }
func (s *Session) ExamID() string { return s.exam.ID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TimeRemaining returns the seconds left on the countdown, or 0 when the
// exam has no time limit or the session is not InProgress.
func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.exam.TimeLimit <= 0 {
		return 0
	}
	return s.remaining
}

// Questions returns the fixed question set in display order.
func (s *Session) Questions() []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answers returns a snapshot of the current answer map.
func (s *Session) Answers() map[string]models.AnswerValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.AnswerValue, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Result returns the graded result, if any.
func (s *Session) Result() (models.ExamResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return models.ExamResult{}, false
	}
	return *s.result, true
}
