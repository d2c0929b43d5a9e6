package mockapi

import (
	"net/http"
	"strings"
)

// anyMethod marks a route that answers every method the same way.
const anyMethod = ""

// idSegment matches a non-negative integer path segment.
const idSegment = "{id}"

type handlerFunc func(s *Store, req Request, params map[string]string) (any, error)

type route struct {
	Name    string
	Method  string
	Pattern string
	Handle  handlerFunc
}

// routeTable is evaluated top to bottom and the first match wins. Method-specific
// entries precede the catch-all entry for the same path.
func routeTable() []route {
	return []route{
		{Name: "login", Method: http.MethodPost, Pattern: "/auth/login", Handle: login},
		{Name: "current-user", Method: anyMethod, Pattern: "/auth/me", Handle: currentUser},
		{Name: "list-subjects", Method: anyMethod, Pattern: "/auth/subjects", Handle: listSubjects},
		{Name: "register-student", Method: anyMethod, Pattern: "/auth/register/student", Handle: register},
		{Name: "register-teacher", Method: anyMethod, Pattern: "/auth/register/teacher", Handle: register},

		{Name: "my-subjects", Method: anyMethod, Pattern: "/students/my-subjects", Handle: mySubjects},
		{Name: "enroll", Method: anyMethod, Pattern: "/students/enroll", Handle: enroll},
		{Name: "face-registered", Method: anyMethod, Pattern: "/students/face-registered", Handle: faceRegistered},
		{Name: "register-face", Method: anyMethod, Pattern: "/students/register-face", Handle: registerFace},
		{Name: "my-stats", Method: anyMethod, Pattern: "/students/my-stats", Handle: myStats},
		{Name: "my-attendance", Method: anyMethod, Pattern: "/students/my-attendance", Handle: myAttendance},

		{Name: "create-subject", Method: http.MethodPost, Pattern: "/teachers/subjects", Handle: createSubject},
		{Name: "teacher-subjects", Method: anyMethod, Pattern: "/teachers/subjects", Handle: listSubjects},
		{Name: "subject-students", Method: anyMethod, Pattern: "/teachers/subjects/{id}/students", Handle: subjectStudents},
		{Name: "mark-attendance", Method: anyMethod, Pattern: "/teachers/mark-attendance", Handle: markAttendance},
	}
}

// match returns the first route accepting method and path, with any pattern parameters.
func match(routes []route, method, path string) (route, map[string]string, bool) {
	for _, rt := range routes {
		if rt.Method != anyMethod && rt.Method != method {
			continue
		}
		if params, ok := matchPattern(rt.Pattern, path); ok {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	if !strings.Contains(pattern, "{") {
		return nil, pattern == path
	}
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range want {
		if seg == idSegment {
			if !isDigits(got[i]) {
				return nil, false
			}
			params["id"] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// StripBase removes the first occurrence of base from rawURL, leaving the route path.
func StripBase(rawURL, base string) string {
	if base == "" || !strings.Contains(rawURL, base) {
		return rawURL
	}
	return strings.Replace(rawURL, base, "", 1)
}
