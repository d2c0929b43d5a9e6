package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"classattend/internal/mockapi"
	"classattend/internal/server"
	"classattend/internal/session"
)

const base = "http://localhost:8000"

func newService() *mockapi.Service {
	return mockapi.NewService(mockapi.NewStore(mockapi.DefaultSeed(time.Now())), mockapi.Options{BaseURL: base})
}

func TestApp_Login_PersistsTokenAndLoadsProfile(t *testing.T) {
	ctx := context.Background()
	tokens := &session.Memory{}
	app := NewApp(NewMock(base, newService()), tokens)

	u, err := app.Login(ctx, "student@test.com", "password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Role != mockapi.RoleStudent || u.Student == nil || u.Student.RollNumber != "CS2024001" {
		t.Errorf("user %+v", u)
	}
	if got, _ := tokens.Load(ctx); got != "mock-student-token-123" {
		t.Errorf("persisted token %q", got)
	}
	if app.User() == nil {
		t.Error("app user not set")
	}

	subs, err := app.Client().MySubjects(ctx)
	if err != nil || len(subs) != 2 || subs[0].Code != "DT101" || subs[1].Code != "CS201" {
		t.Errorf("MySubjects = %+v, %v", subs, err)
	}
}

func TestApp_Login_BadCredentials_APIError(t *testing.T) {
	ctx := context.Background()
	tokens := &session.Memory{}
	app := NewApp(NewMock(base, newService()), tokens)

	_, err := app.Login(ctx, "student@test.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "Invalid credentials" {
		t.Fatalf("err = %v", err)
	}
	if _, err := tokens.Load(ctx); !errors.Is(err, session.ErrNoToken) {
		t.Error("token must not be persisted after failed login")
	}
}

func TestApp_Restore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	svc := newService()

	first := NewApp(NewMock(base, svc), session.File{Path: path})
	if u, err := first.Restore(ctx); u != nil || err != nil {
		t.Fatalf("restore without token = %v, %v", u, err)
	}
	if _, err := first.Login(ctx, "teacher@test.com", "password"); err != nil {
		t.Fatal(err)
	}

	second := NewApp(NewMock(base, svc), session.File{Path: path})
	u, err := second.Restore(ctx)
	if err != nil || u == nil || u.Teacher == nil || u.Teacher.Name != "Demo Teacher" {
		t.Fatalf("restore = %+v, %v", u, err)
	}
}

func TestApp_Restore_StaleToken_LogsOut(t *testing.T) {
	ctx := context.Background()
	tokens := &session.Memory{}
	_ = tokens.Save(ctx, "expired-token")
	app := NewApp(NewMock(base, newService()), tokens)

	_, err := app.Restore(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
	if _, err := tokens.Load(ctx); !errors.Is(err, session.ErrNoToken) {
		t.Error("stale token must be cleared")
	}
	if app.Client().Token() != "" {
		t.Error("client token must be cleared")
	}
}

func TestApp_Logout(t *testing.T) {
	ctx := context.Background()
	tokens := &session.Memory{}
	app := NewApp(NewMock(base, newService()), tokens)
	if _, err := app.Login(ctx, "student@test.com", "password"); err != nil {
		t.Fatal(err)
	}
	if err := app.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if app.User() != nil {
		t.Error("user not cleared")
	}
	if _, err := app.Client().Me(ctx); err == nil {
		t.Error("Me must fail after logout")
	}
}

func TestClient_StudentAndTeacherCalls(t *testing.T) {
	ctx := context.Background()
	c := NewMock(base, newService())

	if msg, err := c.RegisterStudent(ctx, mockapi.StudentRegistration{Email: "new@test.com", SubjectIDs: []int{1}}); err != nil || msg.Message != "Registration successful" {
		t.Errorf("RegisterStudent = %+v, %v", msg, err)
	}
	if msg, err := c.RegisterTeacher(ctx, mockapi.TeacherRegistration{Email: "t@test.com"}); err != nil || msg.Message != "Registration successful" {
		t.Errorf("RegisterTeacher = %+v, %v", msg, err)
	}
	if msg, err := c.Enroll(ctx, []int{3}); err != nil || msg.Message != "Enrolled successfully" {
		t.Errorf("Enroll = %+v, %v", msg, err)
	}
	if _, err := c.RegisterFace(ctx, []string{"data:image/jpeg;base64,AAAA"}); err != nil {
		t.Errorf("RegisterFace: %v", err)
	}
	if st, err := c.FaceStatus(ctx); err != nil || !st.IsRegistered || st.SamplesCount != 5 {
		t.Errorf("FaceStatus = %+v, %v", st, err)
	}
	if stats, err := c.MyStats(ctx); err != nil || len(stats) != 2 {
		t.Errorf("MyStats = %+v, %v", stats, err)
	}
	if recs, err := c.MyAttendance(ctx); err != nil || len(recs) != 2 {
		t.Errorf("MyAttendance = %+v, %v", recs, err)
	}

	sub, err := c.CreateSubject(ctx, mockapi.NewSubject{Name: "Compilers", Code: "CS301", Course: "B.Tech", Branch: "CSE"})
	if err != nil || sub.ID != 6 {
		t.Fatalf("CreateSubject = %+v, %v", sub, err)
	}
	if all, err := c.TeacherSubjects(ctx); err != nil || len(all) != 6 {
		t.Errorf("TeacherSubjects = %d, %v", len(all), err)
	}
	if all, err := c.Subjects(ctx); err != nil || len(all) != 6 {
		t.Errorf("Subjects = %d, %v", len(all), err)
	}
	if roster, err := c.SubjectStudents(ctx, sub.ID); err != nil || len(roster) != 5 {
		t.Errorf("SubjectStudents = %+v, %v", roster, err)
	}
	res, err := c.MarkAttendance(ctx, mockapi.MarkAttendanceRequest{SubjectID: sub.ID, Date: "2026-03-01", Images: []string{"x"}})
	if err != nil || len(res.PresentStudents)+len(res.AbsentStudents) != 5 {
		t.Errorf("MarkAttendance = %+v, %v", res, err)
	}
}

func TestClient_HTTPTransport_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(server.NewRouter(server.Deps{Service: newService()}))
	defer srv.Close()

	ctx := context.Background()
	app := NewApp(New(srv.URL, NewHTTP()), &session.Memory{})

	u, err := app.Login(ctx, "student@test.com", "password")
	if err != nil {
		t.Fatalf("Login over HTTP: %v", err)
	}
	if u.Email != "student@test.com" {
		t.Errorf("user %+v", u)
	}

	resp, err := app.Client().Fetch(ctx, srv.URL+"/does-not-exist", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.OK || resp.Status != http.StatusNotFound {
		t.Errorf("fetch unknown = %+v", resp)
	}
}

func TestClient_Fetch_ContextDone(t *testing.T) {
	svc := mockapi.NewService(mockapi.NewStore(mockapi.DefaultSeed(time.Now())), mockapi.Options{Delay: time.Second})
	c := NewMock(base, svc)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Subjects(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}
