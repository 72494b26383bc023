package store

import (
	"sync"

	"github.com/learnsphere/exam-service/internal/models"
)

// Snapshot is a point-in-time copy of every collection the application
// owns, in the shape the mirror persists.
type Snapshot struct {
	Users        []models.User                  `json:"users"`
	Courses      []models.Course                `json:"courses"`
	Exams        []models.Exam                  `json:"exams"`
	ExamResults  []models.ExamResult            `json:"examResults"`
	UserProgress map[string]models.UserProgress `json:"userProgress"`
}

// Store holds all application state in process memory behind one lock.
// It replaces the ambient, persist-on-every-change context of the
// original application: components receive the store explicitly, and
// mirroring happens at explicit save points, not via subscriptions.
type Store struct {
	mu       sync.RWMutex
	users    []models.User
	courses  []models.Course
	exams    []models.Exam
	results  []models.ExamResult
	progress map[string]models.UserProgress
}

func New() *Store {
	return &Store{progress: make(map[string]models.UserProgress)}
}

// ===== USERS =====

func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// UpdateUser replaces the user with the same id. Returns false when the
// user does not exist.
func (s *Store) UpdateUser(u models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return true
		}
	}
	return false
}

// ===== COURSES =====

func (s *Store) AddCourse(c models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append(s.courses, c)
}

func (s *Store) CourseByID(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.ID == id {
			// Clone Modules so callers can stage edits and commit them
			// through UpdateCourse without aliasing the stored value.
			c.Modules = append([]models.Module(nil), c.Modules...)
			return c, true
		}
	}
	return models.Course{}, false
}

func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s *Store) UpdateCourse(c models.Course) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == c.ID {
			s.courses[i] = c
			return true
		}
	}
	return false
}

func (s *Store) DeleteCourse(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return true
		}
	}
	return false
}

// ===== EXAMS =====

func (s *Store) AddExam(e models.Exam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exams = append(s.exams, e)
}

func (s *Store) ExamByID(id string) (models.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exam{}, false
}

func (s *Store) Exams() []models.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exam, len(s.exams))
	copy(out, s.exams)
	return out
}

func (s *Store) UpdateExam(e models.Exam) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.exams {
		if s.exams[i].ID == e.ID {
			s.exams[i] = e
			return true
		}
	}
	return false
}

func (s *Store) DeleteExam(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.exams {
		if s.exams[i].ID == id {
			s.exams = append(s.exams[:i], s.exams[i+1:]...)
			return true
		}
	}
	return false
}

// ===== EXAM RESULTS =====

// UpsertResult removes any existing record for the same (examId, userId)
// pair and appends the new one, so at most one result per pair is
// retained at all times.
func (s *Store) UpsertResult(r models.ExamResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.results[:0]
	for _, existing := range s.results {
		if existing.ExamID == r.ExamID && existing.UserID == r.UserID {
			continue
		}
		kept = append(kept, existing)
	}
	s.results = append(kept, r)
}

// Result returns the unique record for the (examId, userId) pair.
func (s *Store) Result(examID, userID string) (models.ExamResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.results {
		if r.ExamID == examID && r.UserID == userID {
			return r, true
		}
	}
	return models.ExamResult{}, false
}

func (s *Store) ResultsByExam(examID string) []models.ExamResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ExamResult
	for _, r := range s.results {
		if r.ExamID == examID {
			out = append(out, r)
		}
	}
	return out
}

// DeleteResultsByExam drops every result recorded for the exam. Called
// when the owning course is removed.
func (s *Store) DeleteResultsByExam(examID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.results[:0]
	removed := 0
	for _, r := range s.results {
		if r.ExamID == examID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.results = kept
	return removed
}

func (s *Store) Results() []models.ExamResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ExamResult, len(s.results))
	copy(out, s.results)
	return out
}

// ===== USER PROGRESS =====

func (s *Store) Progress(userID string) models.UserProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[userID]
	if !ok {
		return models.NewUserProgress()
	}
	out := models.NewUserProgress()
	for id, done := range p.CompletedMaterials {
		out.CompletedMaterials[id] = done
	}
	return out
}

func (s *Store) SetProgress(userID string, p models.UserProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[userID] = p
}

// ===== SNAPSHOT / RESTORE =====

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Users:        make([]models.User, len(s.users)),
		Courses:      make([]models.Course, len(s.courses)),
		Exams:        make([]models.Exam, len(s.exams)),
		ExamResults:  make([]models.ExamResult, len(s.results)),
		UserProgress: make(map[string]models.UserProgress, len(s.progress)),
	}
	copy(snap.Users, s.users)
	copy(snap.Courses, s.courses)
	copy(snap.Exams, s.exams)
	copy(snap.ExamResults, s.results)
	for id, p := range s.progress {
		cp := models.NewUserProgress()
		for mid, done := range p.CompletedMaterials {
			cp.CompletedMaterials[mid] = done
		}
		snap.UserProgress[id] = cp
	}
	return snap
}

// Restore replaces all collections with the snapshot's contents. Used
// once at boot to rehydrate from the mirror.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User(nil), snap.Users...)
	s.courses = append([]models.Course(nil), snap.Courses...)
	s.exams = append([]models.Exam(nil), snap.Exams...)
	s.results = append([]models.ExamResult(nil), snap.ExamResults...)
	s.progress = make(map[string]models.UserProgress, len(snap.UserProgress))
	for id, p := range snap.UserProgress {
		s.progress[id] = p
	}
}
