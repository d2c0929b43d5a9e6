package mockapi

import (
	"encoding/json"
	"fmt"

	"classattend/internal/auth"
)

var (
	subjectRoster = []RosterStudent{
		{RollNumber: "CS2024001", Name: "Dewansh", Branch: "CSE"},
		{RollNumber: "CS2024002", Name: "Rohit", Branch: "CSE"},
		{RollNumber: "CS2024003", Name: "Roshan", Branch: "CSE"},
		{RollNumber: "CS2024004", Name: "Sumit", Branch: "CSE"},
		{RollNumber: "CS2024005", Name: "Rithvik", Branch: "CSE"},
	}

	presentStudents = []StudentRef{
		{RollNumber: "CS2024001", Name: "Dewansh"},
		{RollNumber: "CS2024003", Name: "Roshan"},
		{RollNumber: "CS2024004", Name: "Sumit"},
	}

	absentStudents = []StudentRef{
		{RollNumber: "CS2024002", Name: "Rohit"},
		{RollNumber: "CS2024005", Name: "Rithvik"},
	}
)

func decodeBody(req Request, v any) error {
	if err := json.Unmarshal(req.Body, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func login(s *Store, req Request, _ map[string]string) (any, error) {
	var body LoginRequest
	if err := decodeBody(req, &body); err != nil {
		return nil, err
	}
	u, ok := s.userByCredentials(body.Email, body.Password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return LoginResponse{AccessToken: u.AccessToken, TokenType: "bearer"}, nil
}

func currentUser(s *Store, req Request, _ map[string]string) (any, error) {
	u, ok := s.userByToken(auth.BearerToken(req.Header.Get("Authorization")))
	if !ok {
		return nil, ErrUnauthorized
	}
	return u, nil
}

func listSubjects(s *Store, _ Request, _ map[string]string) (any, error) {
	return s.allSubjects(), nil
}

// register accepts any body and stores nothing.
func register(_ *Store, _ Request, _ map[string]string) (any, error) {
	return Message{Message: "Registration successful"}, nil
}

func mySubjects(s *Store, _ Request, _ map[string]string) (any, error) {
	return s.enrolledSubjects(), nil
}

// enroll confirms without inserting enrollment rows.
func enroll(_ *Store, _ Request, _ map[string]string) (any, error) {
	return Message{Message: "Enrolled successfully"}, nil
}

func faceRegistered(s *Store, _ Request, _ map[string]string) (any, error) {
	return s.faceStatus(), nil
}

func registerFace(s *Store, _ Request, _ map[string]string) (any, error) {
	s.setFaceRegistered()
	return Message{Message: "Face registered successfully"}, nil
}

func myStats(s *Store, _ Request, _ map[string]string) (any, error) {
	return s.attendanceStats(), nil
}

func myAttendance(s *Store, _ Request, _ map[string]string) (any, error) {
	return s.attendanceRecords(), nil
}

func createSubject(s *Store, req Request, _ map[string]string) (any, error) {
	var body NewSubject
	if err := decodeBody(req, &body); err != nil {
		return nil, err
	}
	return s.addSubject(body), nil
}

// subjectStudents returns the same roster for every subject id.
func subjectStudents(_ *Store, _ Request, _ map[string]string) (any, error) {
	return append([]RosterStudent{}, subjectRoster...), nil
}

// markAttendance ignores the subject, date and images it is sent.
func markAttendance(_ *Store, _ Request, _ map[string]string) (any, error) {
	detected := make([]Detection, 0, len(presentStudents))
	for _, p := range presentStudents {
		detected = append(detected, Detection{StudentName: p.Name, RollNumber: p.RollNumber})
	}
	return AttendanceResult{
		PresentStudents: append([]StudentRef{}, presentStudents...),
		AbsentStudents:  append([]StudentRef{}, absentStudents...),
		Detections:      [][]Detection{detected},
	}, nil
}
