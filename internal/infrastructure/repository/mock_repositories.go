package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "lesson-reservations/internal/domain/booking"

	"github.com/google/uuid"
)

// mockLessonRepository is an in-memory implementation of LessonRepository
// for testing/demo purposes. Seat operations follow the same semantics as
// the SQL implementation: ReserveSeat only succeeds below capacity,
// ForceSeat always increments, ReleaseSeat floors at zero.
type mockLessonRepository struct {
	lessons map[uuid.UUID]*domain.Lesson
	mutex   sync.RWMutex
}

// NewMockLessonRepository creates a new mock lesson repository
func NewMockLessonRepository() domain.LessonRepository {
	return &mockLessonRepository{
		lessons: make(map[uuid.UUID]*domain.Lesson),
		mutex:   sync.RWMutex{},
	}
}

// Create creates a new lesson
func (r *mockLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	clone := *lesson
	r.lessons[lesson.LessonID] = &clone
	return nil
}

// GetByID retrieves a lesson by ID
func (r *mockLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	lesson, exists := r.lessons[id]
	if !exists {
		return nil, nil
	}
	clone := *lesson
	return &clone, nil
}

// GetAll retrieves all lessons ordered by day of week and time
func (r *mockLessonRepository) GetAll(ctx context.Context) ([]*domain.Lesson, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	lessons := make([]*domain.Lesson, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		clone := *lesson
		lessons = append(lessons, &clone)
	}
	sortLessons(lessons)
	return lessons, nil
}

// GetByDay retrieves lessons scheduled on the given day of week
func (r *mockLessonRepository) GetByDay(ctx context.Context, dayOfWeek string) ([]*domain.Lesson, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var lessons []*domain.Lesson
	for _, lesson := range r.lessons {
		if lesson.DayOfWeek == dayOfWeek {
			clone := *lesson
			lessons = append(lessons, &clone)
		}
	}
	sortLessons(lessons)
	return lessons, nil
}

// GetByCourse retrieves lessons generated from the given course template
func (r *mockLessonRepository) GetByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var lessons []*domain.Lesson
	for _, lesson := range r.lessons {
		if lesson.CourseID != nil && *lesson.CourseID == courseID {
			clone := *lesson
			lessons = append(lessons, &clone)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].Date < lessons[j].Date
	})
	return lessons, nil
}

// Update updates an existing lesson
func (r *mockLessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.lessons[lesson.LessonID]; !exists {
		return domain.ErrLessonNotFound
	}
	clone := *lesson
	r.lessons[lesson.LessonID] = &clone
	return nil
}

// BulkUpdate applies the non-nil update fields to every lesson matching the filter
func (r *mockLessonRepository) BulkUpdate(ctx context.Context, filter domain.LessonFilter, updates domain.LessonUpdate) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var affected int64
	for _, lesson := range r.lessons {
		if !matchesFilter(lesson, filter) {
			continue
		}
		if updates.Title != nil {
			lesson.Title = *updates.Title
		}
		if updates.Time != nil {
			lesson.Time = *updates.Time
		}
		if updates.Location != nil {
			lesson.Location = *updates.Location
		}
		if updates.Capacity != nil {
			lesson.Capacity = *updates.Capacity
		}
		affected++
	}
	return affected, nil
}

// BulkDelete removes every lesson matching the filter
func (r *mockLessonRepository) BulkDelete(ctx context.Context, filter domain.LessonFilter) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var affected int64
	for id, lesson := range r.lessons {
		if matchesFilter(lesson, filter) {
			delete(r.lessons, id)
			affected++
		}
	}
	return affected, nil
}

// ReserveSeat takes a seat if one is still free
func (r *mockLessonRepository) ReserveSeat(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	lesson, exists := r.lessons[id]
	if !exists {
		return false, nil
	}
	if lesson.EnrolledCount >= lesson.Capacity {
		return false, nil
	}
	lesson.EnrolledCount++
	return true, nil
}

// ForceSeat takes a seat regardless of capacity
func (r *mockLessonRepository) ForceSeat(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	lesson, exists := r.lessons[id]
	if !exists {
		return domain.ErrLessonNotFound
	}
	lesson.EnrolledCount++
	return nil
}

// ReleaseSeat frees a seat, never dropping the count below zero
func (r *mockLessonRepository) ReleaseSeat(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	lesson, exists := r.lessons[id]
	if !exists {
		return domain.ErrLessonNotFound
	}
	if lesson.EnrolledCount > 0 {
		lesson.EnrolledCount--
	}
	return nil
}

func sortLessons(lessons []*domain.Lesson) {
	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].DayOfWeek != lessons[j].DayOfWeek {
			return lessons[i].DayOfWeek < lessons[j].DayOfWeek
		}
		return lessons[i].Time < lessons[j].Time
	})
}

func matchesFilter(lesson *domain.Lesson, filter domain.LessonFilter) bool {
	if filter.LessonID != nil && lesson.LessonID != *filter.LessonID {
		return false
	}
	if filter.CourseID != nil && (lesson.CourseID == nil || *lesson.CourseID != *filter.CourseID) {
		return false
	}
	if filter.DayOfWeek != nil && lesson.DayOfWeek != *filter.DayOfWeek {
		return false
	}
	if filter.AgeGroup != nil && lesson.AgeGroup != *filter.AgeGroup {
		return false
	}
	if filter.Location != nil && lesson.Location != *filter.Location {
		return false
	}
	return true
}

// mockParticipantRepository is an in-memory implementation of ParticipantRepository
type mockParticipantRepository struct {
	participants map[uuid.UUID]*domain.Participant
	mutex        sync.RWMutex
}

// NewMockParticipantRepository creates a new mock participant repository
func NewMockParticipantRepository() domain.ParticipantRepository {
	return &mockParticipantRepository{
		participants: make(map[uuid.UUID]*domain.Participant),
		mutex:        sync.RWMutex{},
	}
}

// Create creates a new participant
func (r *mockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	clone := *participant
	r.participants[participant.ParticipantID] = &clone
	return nil
}

// Ensure persists the participant unless one with the same ID already exists
func (r *mockParticipantRepository) Ensure(ctx context.Context, participant *domain.Participant) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.participants[participant.ParticipantID]; exists {
		return nil
	}
	clone := *participant
	r.participants[participant.ParticipantID] = &clone
	return nil
}

// GetByID retrieves a participant by ID
func (r *mockParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	participant, exists := r.participants[id]
	if !exists {
		return nil, nil
	}
	clone := *participant
	return &clone, nil
}

// GetAll retrieves all participants
func (r *mockParticipantRepository) GetAll(ctx context.Context) ([]*domain.Participant, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	participants := make([]*domain.Participant, 0, len(r.participants))
	for _, participant := range r.participants {
		clone := *participant
		participants = append(participants, &clone)
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].Name < participants[j].Name
	})
	return participants, nil
}

// mockCourseRepository is an in-memory implementation of CourseRepository
type mockCourseRepository struct {
	courses map[uuid.UUID]*domain.Course
	members map[uuid.UUID][]uuid.UUID
	mutex   sync.RWMutex
}

// NewMockCourseRepository creates a new mock course repository
func NewMockCourseRepository() domain.CourseRepository {
	return &mockCourseRepository{
		courses: make(map[uuid.UUID]*domain.Course),
		members: make(map[uuid.UUID][]uuid.UUID),
		mutex:   sync.RWMutex{},
	}
}

// Create creates a new course
func (r *mockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	clone := *course
	r.courses[course.CourseID] = &clone
	return nil
}

// GetByID retrieves a course by ID
func (r *mockCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	course, exists := r.courses[id]
	if !exists {
		return nil, nil
	}
	clone := *course
	return &clone, nil
}

// GetAll retrieves all courses
func (r *mockCourseRepository) GetAll(ctx context.Context) ([]*domain.Course, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	courses := make([]*domain.Course, 0, len(r.courses))
	for _, course := range r.courses {
		clone := *course
		courses = append(courses, &clone)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].Name < courses[j].Name
	})
	return courses, nil
}

// AddMember adds a participant to the course cohort, ignoring duplicates
func (r *mockCourseRepository) AddMember(ctx context.Context, courseID, participantID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, id := range r.members[courseID] {
		if id == participantID {
			return nil
		}
	}
	r.members[courseID] = append(r.members[courseID], participantID)
	return nil
}

// GetMemberIDs returns the participant IDs in the course cohort
func (r *mockCourseRepository) GetMemberIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ids := make([]uuid.UUID, len(r.members[courseID]))
	copy(ids, r.members[courseID])
	return ids, nil
}

// mockRegistrationRepository is an in-memory implementation of RegistrationRepository
type mockRegistrationRepository struct {
	registrations map[uuid.UUID]*domain.Registration
	mutex         sync.RWMutex
}

// NewMockRegistrationRepository creates a new mock registration repository
func NewMockRegistrationRepository() domain.RegistrationRepository {
	return &mockRegistrationRepository{
		registrations: make(map[uuid.UUID]*domain.Registration),
		mutex:         sync.RWMutex{},
	}
}

// Create creates a new registration
func (r *mockRegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	clone := *registration
	r.registrations[registration.RegistrationID] = &clone
	return nil
}

// GetByID retrieves a registration by ID
func (r *mockRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	registration, exists := r.registrations[id]
	if !exists {
		return nil, nil
	}
	clone := *registration
	return &clone, nil
}

// GetByLesson retrieves all registrations for a lesson
func (r *mockRegistrationRepository) GetByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Registration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var registrations []*domain.Registration
	for _, registration := range r.registrations {
		if registration.LessonID == lessonID {
			clone := *registration
			registrations = append(registrations, &clone)
		}
	}
	sortRegistrations(registrations)
	return registrations, nil
}

// GetByParticipant retrieves all registrations for a participant
func (r *mockRegistrationRepository) GetByParticipant(ctx context.Context, participantID uuid.UUID) ([]*domain.Registration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var registrations []*domain.Registration
	for _, registration := range r.registrations {
		if registration.ParticipantID == participantID {
			clone := *registration
			registrations = append(registrations, &clone)
		}
	}
	sortRegistrations(registrations)
	return registrations, nil
}

// GetByParticipantAndLesson returns the most recent registration for the pair
func (r *mockRegistrationRepository) GetByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*domain.Registration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var latest *domain.Registration
	for _, registration := range r.registrations {
		if registration.ParticipantID != participantID || registration.LessonID != lessonID {
			continue
		}
		if latest == nil || registration.RegisteredAt.After(latest.RegisteredAt) {
			latest = registration
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

// GetActiveByParticipantAndLesson returns a confirmed or waitlisted registration for the pair
func (r *mockRegistrationRepository) GetActiveByParticipantAndLesson(ctx context.Context, participantID, lessonID uuid.UUID) (*domain.Registration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, registration := range r.registrations {
		if registration.ParticipantID == participantID &&
			registration.LessonID == lessonID &&
			registration.Status.IsActive() {
			clone := *registration
			return &clone, nil
		}
	}
	return nil, nil
}

// Update updates an existing registration
func (r *mockRegistrationRepository) Update(ctx context.Context, registration *domain.Registration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.registrations[registration.RegistrationID]; !exists {
		return domain.ErrRegistrationNotFound
	}
	clone := *registration
	r.registrations[registration.RegistrationID] = &clone
	return nil
}

func sortRegistrations(registrations []*domain.Registration) {
	sort.Slice(registrations, func(i, j int) bool {
		return registrations[i].RegisteredAt.Before(registrations[j].RegisteredAt)
	})
}

// mockUserRepository is an in-memory implementation of UserRepository
type mockUserRepository struct {
	users map[uuid.UUID]*domain.User
	mutex sync.RWMutex
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() domain.UserRepository {
	return &mockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
		mutex: sync.RWMutex{},
	}
}

// Create creates a new user
func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.UserID] = &clone
	return nil
}

// GetByID retrieves a user by ID
func (r *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// GetByEmail retrieves a user by email
func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

// UpdateLastLogin stamps the user's last login time
func (r *mockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, exists := r.users[id]
	if !exists {
		return domain.ErrUserNotFound
	}
	stamp := at
	user.LastLogin = &stamp
	return nil
}
