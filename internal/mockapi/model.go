package mockapi

// Role distinguishes the two kinds of account.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// StudentProfile is the role-specific part of a student account.
type StudentProfile struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Course     string `json:"course"`
	Branch     string `json:"branch"`
	Batch      string `json:"batch"`
}

// TeacherProfile is the role-specific part of a teacher account.
type TeacherProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a seeded account. Exactly one of Student and Teacher is set, matching Role.
type User struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        Role            `json:"role"`
	Name        string          `json:"name"`
	AccessToken string          `json:"access_token"`
	Student     *StudentProfile `json:"student_info,omitempty"`
	Teacher     *TeacherProfile `json:"teacher_info,omitempty"`
}

// Valid reports whether the profile variant matches the role.
func (u User) Valid() bool {
	switch u.Role {
	case RoleStudent:
		return u.Student != nil && u.Teacher == nil
	case RoleTeacher:
		return u.Teacher != nil && u.Student == nil
	}
	return false
}

type Subject struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Course string `json:"course"`
	Branch string `json:"branch"`
}

// Enrollment joins a student to a subject. Duplicates are allowed.
type Enrollment struct {
	StudentID int `json:"student_id"`
	SubjectID int `json:"subject_id"`
}

// AttendanceRecord is one day's presence for a subject. Date is an ISO calendar date.
type AttendanceRecord struct {
	Date        string `json:"date"`
	SubjectName string `json:"subject_name"`
	IsPresent   bool   `json:"is_present"`
}

// AttendanceStat is a precomputed per-subject aggregate.
type AttendanceStat struct {
	SubjectName  string `json:"subject_name"`
	PresentCount int    `json:"present_count"`
	TotalClasses int    `json:"total_classes"`
}

// RosterStudent is a row of a subject roster.
type RosterStudent struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
	Branch     string `json:"branch"`
}

// StudentRef names a student in an attendance result.
type StudentRef struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
}

// Detection pairs a recognized name with a roll number for one face in one image.
type Detection struct {
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
}

// AttendanceResult is returned by mark-attendance. Detections holds one list per image.
type AttendanceResult struct {
	PresentStudents []StudentRef  `json:"present_students"`
	AbsentStudents  []StudentRef  `json:"absent_students"`
	Detections      [][]Detection `json:"detections"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// FaceStatus reports whether face samples are on file.
type FaceStatus struct {
	IsRegistered bool `json:"is_registered"`
	SamplesCount int  `json:"samples_count"`
}

// NewSubject is the body of a subject creation call.
type NewSubject struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Course string `json:"course"`
	Branch string `json:"branch"`
}

// StudentRegistration is what the shell sends to register a student. The mock accepts and discards it.
type StudentRegistration struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Course     string `json:"course"`
	Branch     string `json:"branch"`
	Batch      string `json:"batch"`
	SubjectIDs []int  `json:"subject_ids"`
}

type TeacherRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type EnrollRequest struct {
	SubjectIDs []int `json:"subject_ids"`
}

// FaceSamples carries captured frames as data URLs.
type FaceSamples struct {
	Frames []string `json:"frames"`
}

// MarkAttendanceRequest carries classroom images as data URLs. The mock ignores its contents.
type MarkAttendanceRequest struct {
	SubjectID int      `json:"subject_id"`
	Date      string   `json:"date"`
	Images    []string `json:"images"`
}

// Message is the body of routes that only confirm.
type Message struct {
	Message string `json:"message"`
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}
