package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorren/desk/core/class"
	"github.com/tutorren/desk/core/schedule"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
	"github.com/tutorren/desk/core/user"
)

// Feature is extra behaviour a client attaches to an entity view.
type Feature string

const (
	// FeatureAvailability shows the slot picker backed by /classes/availability.
	FeatureAvailability Feature = "availability"
	// FeatureOptions fills reference fields from /options/*.
	FeatureOptions Feature = "options"
)

// Field kinds
const (
	KindText     = "text"
	KindEmail    = "email"
	KindPassword = "password"
	KindChoice   = "choice"
	KindRef      = "ref" // "<id> — <name>" option
	KindList     = "list"
)

type (
	// Field describes one form input.
	Field struct {
		Name     string   `json:"name"`
		Label    string   `json:"label"`
		Kind     string   `json:"kind"`
		Required bool     `json:"required"`
		Choices  []string `json:"choices,omitempty"`
		Source   string   `json:"source,omitempty"` // endpoint listing the options
	}

	// View is the declarative description of an entity screen: table columns,
	// form fields and attached features.
	View struct {
		Entity      string    `json:"entity"`
		Title       string    `json:"title"`
		Endpoint    string    `json:"endpoint"`
		Key         string    `json:"key"`
		Columns     []string  `json:"columns"`
		Fields      []Field   `json:"fields"`
		Features    []Feature `json:"features"`
		ManagerOnly bool      `json:"manager_only"`
	}
)

func (v View) Has(f Feature) bool {
	for _, vf := range v.Features {
		if vf == f {
			return true
		}
	}
	return false
}

var views = []View{
	{
		Entity:   "tutor",
		Title:    "Tutors",
		Endpoint: "/v1/tutors",
		Key:      tutor.Schema.Key,
		Columns:  tutor.Schema.Columns,
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "subjects", Label: "Subjects (comma separated)", Kind: KindList},
		},
		Features: []Feature{},
	},
	{
		Entity:   "student",
		Title:    "Students",
		Endpoint: "/v1/students",
		Key:      student.Schema.Key,
		Columns:  student.Schema.Columns,
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "year", Label: "Year", Kind: KindText, Required: true},
		},
		Features: []Feature{},
	},
	{
		Entity:   "class",
		Title:    "Classes",
		Endpoint: "/v1/classes",
		Key:      class.Schema.Key,
		Columns:  class.Schema.Columns,
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "tutor_id", Label: "Tutor", Kind: KindRef, Required: true, Source: "/v1/options/tutors"},
			{Name: "student_id", Label: "Student", Kind: KindRef, Required: true, Source: "/v1/options/students"},
			{Name: "day", Label: "Day", Kind: KindChoice, Required: true, Choices: schedule.Days},
			{Name: "time", Label: "Time", Kind: KindChoice, Required: true, Choices: schedule.Slots},
		},
		Features: []Feature{FeatureOptions, FeatureAvailability},
	},
	{
		Entity:   "user",
		Title:    "Users",
		Endpoint: "/v1/users",
		Key:      user.Schema.Key,
		Columns:  []string{"username", "role"},
		Fields: []Field{
			{Name: "username", Label: "Username", Kind: KindText, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
			{Name: "role", Label: "Role", Kind: KindChoice, Required: true, Choices: user.AllRoles},
		},
		Features:    []Feature{},
		ManagerOnly: true,
	},
}

// ViewsFor returns the views available to `role`, in menu order.
func ViewsFor(role string) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if v.ManagerOnly && role != user.RoleManager {
			continue
		}
		out = append(out, v)
	}
	return out
}

func registerViewAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	g.GET("/views", queryViews, jwt)
}

func queryViews(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, ViewsFor(claims.Role))
}
