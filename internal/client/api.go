package client

import (
	"context"
	"net/http"
	"strconv"

	"classattend/internal/mockapi"
)

func (c *Client) Login(ctx context.Context, email, password string) (mockapi.LoginResponse, error) {
	var out mockapi.LoginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", mockapi.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (mockapi.User, error) {
	var out mockapi.User
	err := c.call(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// Subjects lists every subject; it needs no token.
func (c *Client) Subjects(ctx context.Context) ([]mockapi.Subject, error) {
	var out []mockapi.Subject
	err := c.call(ctx, http.MethodGet, "/auth/subjects", nil, &out)
	return out, err
}

func (c *Client) RegisterStudent(ctx context.Context, reg mockapi.StudentRegistration) (mockapi.Message, error) {
	var out mockapi.Message
	err := c.call(ctx, http.MethodPost, "/auth/register/student", reg, &out)
	return out, err
}

func (c *Client) RegisterTeacher(ctx context.Context, reg mockapi.TeacherRegistration) (mockapi.Message, error) {
	var out mockapi.Message
	err := c.call(ctx, http.MethodPost, "/auth/register/teacher", reg, &out)
	return out, err
}

func (c *Client) MySubjects(ctx context.Context) ([]mockapi.Subject, error) {
	var out []mockapi.Subject
	err := c.call(ctx, http.MethodGet, "/students/my-subjects", nil, &out)
	return out, err
}

func (c *Client) Enroll(ctx context.Context, subjectIDs []int) (mockapi.Message, error) {
	var out mockapi.Message
	err := c.call(ctx, http.MethodPost, "/students/enroll", mockapi.EnrollRequest{SubjectIDs: subjectIDs}, &out)
	return out, err
}

func (c *Client) FaceStatus(ctx context.Context) (mockapi.FaceStatus, error) {
	var out mockapi.FaceStatus
	err := c.call(ctx, http.MethodGet, "/students/face-registered", nil, &out)
	return out, err
}

// RegisterFace uploads captured frames as data URLs.
func (c *Client) RegisterFace(ctx context.Context, frames []string) (mockapi.Message, error) {
	var out mockapi.Message
	err := c.call(ctx, http.MethodPost, "/students/register-face", mockapi.FaceSamples{Frames: frames}, &out)
	return out, err
}

func (c *Client) MyStats(ctx context.Context) ([]mockapi.AttendanceStat, error) {
	var out []mockapi.AttendanceStat
	err := c.call(ctx, http.MethodGet, "/students/my-stats", nil, &out)
	return out, err
}

func (c *Client) MyAttendance(ctx context.Context) ([]mockapi.AttendanceRecord, error) {
	var out []mockapi.AttendanceRecord
	err := c.call(ctx, http.MethodGet, "/students/my-attendance", nil, &out)
	return out, err
}

func (c *Client) TeacherSubjects(ctx context.Context) ([]mockapi.Subject, error) {
	var out []mockapi.Subject
	err := c.call(ctx, http.MethodGet, "/teachers/subjects", nil, &out)
	return out, err
}

func (c *Client) CreateSubject(ctx context.Context, sub mockapi.NewSubject) (mockapi.Subject, error) {
	var out mockapi.Subject
	err := c.call(ctx, http.MethodPost, "/teachers/subjects", sub, &out)
	return out, err
}

func (c *Client) SubjectStudents(ctx context.Context, subjectID int) ([]mockapi.RosterStudent, error) {
	var out []mockapi.RosterStudent
	err := c.call(ctx, http.MethodGet, "/teachers/subjects/"+strconv.Itoa(subjectID)+"/students", nil, &out)
	return out, err
}

func (c *Client) MarkAttendance(ctx context.Context, req mockapi.MarkAttendanceRequest) (mockapi.AttendanceResult, error) {
	var out mockapi.AttendanceResult
	err := c.call(ctx, http.MethodPost, "/teachers/mark-attendance", req, &out)
	return out, err
}
