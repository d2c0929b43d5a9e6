package mockapi

import (
	"sync"
	"time"
)

// FaceSamplesCount is what face-registered reports regardless of what was uploaded.
const FaceSamplesCount = 5

// Seed is the initial content of a Store.
type Seed struct {
	Users          []User
	Subjects       []Subject
	Enrollments    []Enrollment
	Attendance     []AttendanceRecord
	Stats          []AttendanceStat
	FaceRegistered bool
}

// DefaultSeed returns the demo dataset. Attendance dates are today and yesterday in UTC relative to now.
func DefaultSeed(now time.Time) Seed {
	today := now.UTC()
	return Seed{
		Users: []User{
			{
				Email:       "student@test.com",
				Password:    "password",
				Role:        RoleStudent,
				Name:        "Demo Student",
				AccessToken: "mock-student-token-123",
				Student: &StudentProfile{
					ID:         1,
					Name:       "Demo Student",
					RollNumber: "CS2024001",
					Course:     "B.Tech",
					Branch:     "CSE",
					Batch:      "2024-2028",
				},
			},
			{
				Email:       "teacher@test.com",
				Password:    "password",
				Role:        RoleTeacher,
				Name:        "Demo Teacher",
				AccessToken: "mock-teacher-token-456",
				Teacher:     &TeacherProfile{ID: 1, Name: "Demo Teacher"},
			},
		},
		Subjects: []Subject{
			{ID: 1, Name: "Design Thinking", Code: "DT101", Course: "B.Tech", Branch: "CSE"},
			{ID: 2, Name: "Data Structures & Algorithms", Code: "CS201", Course: "B.Tech", Branch: "CSE"},
			{ID: 3, Name: "Optimization Techniques", Code: "OT301", Course: "B.Tech", Branch: "CSE"},
			{ID: 4, Name: "BEEE", Code: "EE101", Course: "B.Tech", Branch: "CSE"},
			{ID: 5, Name: "Mathematics", Code: "MA101", Course: "B.Tech", Branch: "CSE"},
		},
		Enrollments: []Enrollment{
			{StudentID: 1, SubjectID: 1},
			{StudentID: 1, SubjectID: 2},
		},
		Attendance: []AttendanceRecord{
			{Date: isoDate(today), SubjectName: "Data Structures", IsPresent: true},
			{Date: isoDate(today.AddDate(0, 0, -1)), SubjectName: "Algorithms", IsPresent: false},
		},
		Stats: []AttendanceStat{
			{SubjectName: "Data Structures", PresentCount: 8, TotalClasses: 10},
			{SubjectName: "Algorithms", PresentCount: 5, TotalClasses: 10},
		},
		FaceRegistered: true,
	}
}

func isoDate(t time.Time) string { return t.Format("2006-01-02") }

// Store holds the mock dataset for the life of the process.
// Every route handler runs with mu held, so a request observes and mutates the store atomically.
type Store struct {
	mu             sync.Mutex
	users          []User
	subjects       []Subject
	enrollments    []Enrollment
	attendance     []AttendanceRecord
	stats          []AttendanceStat
	faceRegistered bool
}

// NewStore copies seed into a fresh store.
func NewStore(seed Seed) *Store {
	return &Store{
		users:          append([]User(nil), seed.Users...),
		subjects:       append([]Subject(nil), seed.Subjects...),
		enrollments:    append([]Enrollment(nil), seed.Enrollments...),
		attendance:     append([]AttendanceRecord(nil), seed.Attendance...),
		stats:          append([]AttendanceStat(nil), seed.Stats...),
		faceRegistered: seed.FaceRegistered,
	}
}

// The accessors below assume mu is held by the caller.

func (s *Store) userByCredentials(email, password string) (User, bool) {
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) userByToken(token string) (User, bool) {
	if token == "" {
		return User{}, false
	}
	for _, u := range s.users {
		if u.AccessToken == token {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) allSubjects() []Subject {
	return append([]Subject{}, s.subjects...)
}

// enrolledSubjects returns, in subject order, every subject referenced by at least one enrollment row.
func (s *Store) enrolledSubjects() []Subject {
	out := []Subject{}
	for _, sub := range s.subjects {
		for _, e := range s.enrollments {
			if e.SubjectID == sub.ID {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}

// addSubject assigns the next id as current count + 1.
func (s *Store) addSubject(in NewSubject) Subject {
	sub := Subject{
		ID:     len(s.subjects) + 1,
		Name:   in.Name,
		Code:   in.Code,
		Course: in.Course,
		Branch: in.Branch,
	}
	s.subjects = append(s.subjects, sub)
	return sub
}

func (s *Store) attendanceRecords() []AttendanceRecord {
	return append([]AttendanceRecord{}, s.attendance...)
}

func (s *Store) attendanceStats() []AttendanceStat {
	return append([]AttendanceStat{}, s.stats...)
}

func (s *Store) faceStatus() FaceStatus {
	return FaceStatus{IsRegistered: s.faceRegistered, SamplesCount: FaceSamplesCount}
}

func (s *Store) setFaceRegistered() { s.faceRegistered = true }
