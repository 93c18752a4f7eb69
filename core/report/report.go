// Package report derives read-only views over the class table: weekly
// schedules grouped per tutor and per student, upcoming occurrences and
// dashboard counts. Every view is rebuilt from the store on each call.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/tutorren/desk/core/class"
	"github.com/tutorren/desk/core/schedule"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
)

// SnapshotWindow is the span covered by Snapshot.
const SnapshotWindow = 72 * time.Hour

type (
	// Entry is one class in a Group, seen from the group's owner.
	Entry struct {
		ClassID  string `json:"class_id"`
		Title    string `json:"title"`
		Schedule string `json:"schedule"`
		With     string `json:"with"` // name of the other party
	}

	// Group lists the classes of one tutor or student in weekly order.
	// Name falls back to ID when the owner is not in its table.
	Group struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Entries []Entry `json:"entries"`
	}

	Counts struct {
		Tutors   int `json:"tutors"`
		Students int `json:"students"`
		Classes  int `json:"classes"`
	}

	// Occurrence is one dated instance of a weekly class.
	Occurrence struct {
		When        time.Time   `json:"when"`
		Class       class.Class `json:"class"`
		TutorName   string      `json:"tutor_name"`
		TutorEmail  string      `json:"tutor_email"`
		StudentName string      `json:"student_name"`
	}

	Service struct {
		tutors   *tutor.Service
		students *student.Service
		classes  *class.Service
	}

	// dataset is one consistent read of the three tables.
	dataset struct {
		tutors   []tutor.Tutor
		students []student.Student
		classes  []class.Class
	}
)

func NewService(tutors *tutor.Service, students *student.Service, classes *class.Service) *Service {
	return &Service{tutors: tutors, students: students, classes: classes}
}

func (svc *Service) load(ctx context.Context) (dataset, error) {
	var ds dataset
	var err error
	if ds.tutors, err = svc.tutors.List(ctx); err != nil {
		return ds, err
	}
	if ds.students, err = svc.students.List(ctx); err != nil {
		return ds, err
	}
	ds.classes, err = svc.classes.List(ctx)
	return ds, err
}

func (ds dataset) tutorNames() map[string]string {
	names := make(map[string]string, len(ds.tutors))
	for _, t := range ds.tutors {
		names[t.ID] = t.Name
	}
	return names
}

func (ds dataset) studentNames() map[string]string {
	names := make(map[string]string, len(ds.students))
	for _, s := range ds.students {
		names[s.ID] = s.Name
	}
	return names
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// Counts returns the number of rows of each table.
func (svc *Service) Counts(ctx context.Context) (Counts, error) {
	ds, err := svc.load(ctx)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Tutors: len(ds.tutors), Students: len(ds.students), Classes: len(ds.classes)}, nil
}

// group builds one Group per owner id: known owners first in table order,
// then unknown ids in order of appearance.
func group(ownerIDs []string, owners map[string]string, others map[string]string,
	classes []class.Class, ownerOf, otherOf func(class.Class) string) []Group {
	idx := make(map[string]int, len(ownerIDs))
	groups := make([]Group, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		idx[id] = len(groups)
		groups = append(groups, Group{ID: id, Name: owners[id], Entries: make([]Entry, 0)})
	}
	for _, c := range classes {
		id := ownerOf(c)
		i, ok := idx[id]
		if !ok {
			i = len(groups)
			idx[id] = i
			groups = append(groups, Group{ID: id, Name: id, Entries: make([]Entry, 0)})
		}
		groups[i].Entries = append(groups[i].Entries, Entry{
			ClassID:  c.ID,
			Title:    c.Title,
			Schedule: c.Schedule,
			With:     nameOr(others, otherOf(c)),
		})
	}
	for _, g := range groups {
		entries := g.Entries
		sort.SliceStable(entries, func(i, j int) bool { return schedule.Less(entries[i].Schedule, entries[j].Schedule) })
	}
	return groups
}

// TutorSchedules returns every tutor's weekly classes, sorted by slot.
func (svc *Service) TutorSchedules(ctx context.Context) ([]Group, error) {
	ds, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ds.tutors))
	for _, t := range ds.tutors {
		ids = append(ids, t.ID)
	}
	return group(ids, ds.tutorNames(), ds.studentNames(), ds.classes,
		func(c class.Class) string { return c.TutorID },
		func(c class.Class) string { return c.StudentID },
	), nil
}

// StudentSchedules returns every student's weekly classes, sorted by slot.
func (svc *Service) StudentSchedules(ctx context.Context) ([]Group, error) {
	ds, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ds.students))
	for _, s := range ds.students {
		ids = append(ids, s.ID)
	}
	return group(ids, ds.studentNames(), ds.tutorNames(), ds.classes,
		func(c class.Class) string { return c.StudentID },
		func(c class.Class) string { return c.TutorID },
	), nil
}

func (ds dataset) occurrences(now time.Time) []Occurrence {
	tutorNames, studentNames := ds.tutorNames(), ds.studentNames()
	emails := make(map[string]string, len(ds.tutors))
	for _, t := range ds.tutors {
		emails[t.ID] = t.Email
	}

	out := make([]Occurrence, 0, len(ds.classes))
	for _, c := range ds.classes {
		when, ok := schedule.NextOccurrence(c.Schedule, now)
		if !ok {
			continue
		}
		out = append(out, Occurrence{
			When:        when,
			Class:       c,
			TutorName:   nameOr(tutorNames, c.TutorID),
			TutorEmail:  emails[c.TutorID],
			StudentName: nameOr(studentNames, c.StudentID),
		})
	}
	return out
}

// NearestPerTutor returns, per tutor, the class occurring first at or after `now`.
// Tutors are listed in table order, unknown tutor ids last; ties keep the earlier row.
func (svc *Service) NearestPerTutor(ctx context.Context, now time.Time) ([]Occurrence, error) {
	ds, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}

	known := ds.tutorNames()
	nearest := make(map[string]Occurrence)
	order := make([]string, 0, len(ds.tutors))
	for _, t := range ds.tutors {
		order = append(order, t.ID)
	}
	for _, occ := range ds.occurrences(now) {
		id := occ.Class.TutorID
		cur, seen := nearest[id]
		if !seen {
			if _, ok := known[id]; !ok {
				order = append(order, id)
			}
		}
		if !seen || occ.When.Before(cur.When) {
			nearest[id] = occ
		}
	}

	out := make([]Occurrence, 0, len(nearest))
	for _, id := range order {
		if occ, ok := nearest[id]; ok {
			out = append(out, occ)
		}
	}
	return out, nil
}

// Snapshot returns every class occurrence in [now, now+SnapshotWindow), by time.
func (svc *Service) Snapshot(ctx context.Context, now time.Time) ([]Occurrence, error) {
	ds, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	end := now.Add(SnapshotWindow)
	out := make([]Occurrence, 0)
	for _, occ := range ds.occurrences(now) {
		if occ.When.Before(end) {
			out = append(out, occ)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	return out, nil
}
