package scope

import (
	"testing"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	teacherA idx.ID
	teacherB idx.ID
	classA   idx.ID
	classB   idx.ID
	classes  []domain.Class
	students []domain.Student
}

func newFixture() fixture {
	f := fixture{
		teacherA: idx.New(),
		teacherB: idx.New(),
		classA:   idx.New(),
		classB:   idx.New(),
	}
	f.classes = []domain.Class{
		{Key: f.classA, Name: "Year 4 Blue", TeacherID: f.teacherA},
		{Key: f.classB, Name: "Year 5 Red", TeacherID: f.teacherB},
	}
	f.students = []domain.Student{
		{Key: idx.New(), Name: "Ana", ClassID: f.classA},
		{Key: idx.New(), Name: "Ben", ClassID: f.classB},
		{Key: idx.New(), Name: "Cal", ClassID: f.classA},
	}
	return f
}

func teacherSession(id idx.ID) domain.Session {
	return domain.NewStaffSession(domain.TeacherRecord{Key: id, Username: "t", Name: "T"})
}

func supervisorSession(classes ...idx.ID) domain.Session {
	return domain.NewStaffSession(domain.TeacherRecord{
		Key:              idx.New(),
		Username:         "sup",
		Name:             "Sup",
		IsSupervisor:     true,
		AssignedClassIDs: classes,
	})
}

func TestClasses(t *testing.T) {
	t.Parallel()
	f := newFixture()

	t.Run("admin sees every class in snapshot order", func(t *testing.T) {
		got := Classes(domain.NewAdminSession(domain.AdminRecord{ID: idx.New()}), f.classes)
		require.Equal(t, f.classes, got)
	})

	t.Run("teacher sees only classes they teach", func(t *testing.T) {
		got := Classes(teacherSession(f.teacherA), f.classes)
		require.Len(t, got, 1)
		require.Equal(t, f.classA, got[0].Key)
	})

	t.Run("supervisor sees only assigned classes", func(t *testing.T) {
		got := Classes(supervisorSession(f.classB), f.classes)
		require.Len(t, got, 1)
		require.Equal(t, f.classB, got[0].Key)
	})

	t.Run("student sees no classes", func(t *testing.T) {
		s := domain.NewStudentSession(domain.StudentRecord{Key: idx.New(), ClassID: f.classA}, "Year 4 Blue")
		require.Empty(t, Classes(s, f.classes))
	})

	t.Run("nil session sees nothing", func(t *testing.T) {
		require.Empty(t, Classes(nil, f.classes))
	})
}

func TestStudents(t *testing.T) {
	t.Parallel()
	f := newFixture()

	t.Run("admin sees every student", func(t *testing.T) {
		got := Students(domain.NewAdminSession(domain.AdminRecord{ID: idx.New()}), f.classes, f.students)
		require.Equal(t, f.students, got)
	})

	t.Run("teacher sees students of taught classes only", func(t *testing.T) {
		got := Students(teacherSession(f.teacherA), f.classes, f.students)
		require.Len(t, got, 2)
		require.Equal(t, "Ana", got[0].Name)
		require.Equal(t, "Cal", got[1].Name)
	})

	t.Run("supervisor sees students of assigned classes only", func(t *testing.T) {
		got := Students(supervisorSession(f.classB), f.classes, f.students)
		require.Len(t, got, 1)
		require.Equal(t, "Ben", got[0].Name)
	})

	t.Run("student sees no student listing", func(t *testing.T) {
		s := domain.NewStudentSession(domain.StudentRecord{Key: idx.New(), ClassID: f.classA}, "")
		require.Empty(t, Students(s, f.classes, f.students))
	})

	t.Run("student pointing at a vanished class filtered purely by id", func(t *testing.T) {
		gone := idx.New()
		orphan := []domain.Student{{Key: idx.New(), Name: "Drifter", ClassID: gone}}

		require.Empty(t, Students(teacherSession(f.teacherA), f.classes, orphan))
		got := Students(supervisorSession(gone), f.classes, orphan)
		require.Len(t, got, 1)
	})
}

func TestAnnouncements(t *testing.T) {
	t.Parallel()
	f := newFixture()

	when := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	global := domain.Announcement{Key: idx.New(), Title: "Assembly", CreatedAt: when}
	forA := domain.Announcement{Key: idx.New(), Title: "Homework A", ClassID: f.classA, CreatedAt: when}
	forB := domain.Announcement{Key: idx.New(), Title: "Trip B", ClassID: f.classB, CreatedAt: when}
	snapshot := []domain.Announcement{global, forA, forB}

	t.Run("global visible to every role", func(t *testing.T) {
		sessions := []domain.Session{
			domain.NewAdminSession(domain.AdminRecord{ID: idx.New()}),
			teacherSession(f.teacherA),
			supervisorSession(f.classB),
			domain.NewStudentSession(domain.StudentRecord{Key: idx.New(), ClassID: f.classA}, ""),
		}
		for _, s := range sessions {
			got := Announcements(s, f.classes, []domain.Announcement{global})
			require.Len(t, got, 1, "role %s", s.Role())
		}
	})

	t.Run("teacher excluded from other classes", func(t *testing.T) {
		got := Announcements(teacherSession(f.teacherA), f.classes, snapshot)
		require.Len(t, got, 2)
		for _, a := range got {
			require.NotEqual(t, f.classB, a.ClassID)
		}
	})

	t.Run("student sees global plus own class", func(t *testing.T) {
		s := domain.NewStudentSession(domain.StudentRecord{Key: idx.New(), ClassID: f.classB}, "")
		got := Announcements(s, f.classes, snapshot)
		require.Len(t, got, 2)
		require.Equal(t, "Assembly", got[0].Title)
		require.Equal(t, "Trip B", got[1].Title)
	})

	t.Run("admin sees all", func(t *testing.T) {
		got := Announcements(domain.NewAdminSession(domain.AdminRecord{ID: idx.New()}), f.classes, snapshot)
		require.Len(t, got, 3)
	})

	t.Run("sorted newest first with stable ties", func(t *testing.T) {
		jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		input := []domain.Announcement{
			{Key: idx.New(), Title: "january", CreatedAt: jan},
			{Key: idx.New(), Title: "march", CreatedAt: mar},
			{Key: idx.New(), Title: "february", CreatedAt: feb},
			{Key: idx.New(), Title: "march again", CreatedAt: mar},
		}

		got := Announcements(domain.NewAdminSession(domain.AdminRecord{ID: idx.New()}), nil, input)
		require.Len(t, got, 4)
		require.Equal(t, "march", got[0].Title)
		require.Equal(t, "march again", got[1].Title)
		require.Equal(t, "february", got[2].Title)
		require.Equal(t, "january", got[3].Title)
	})

	t.Run("announcement for vanished class matched purely by id", func(t *testing.T) {
		gone := idx.New()
		orphan := []domain.Announcement{{Key: idx.New(), Title: "Stale", ClassID: gone, CreatedAt: when}}

		require.Empty(t, Announcements(teacherSession(f.teacherA), f.classes, orphan))

		s := domain.NewStudentSession(domain.StudentRecord{Key: idx.New(), ClassID: gone}, "")
		require.Len(t, Announcements(s, f.classes, orphan), 1)
	})

	t.Run("nil session sees nothing", func(t *testing.T) {
		require.Empty(t, Announcements(nil, f.classes, snapshot))
	})
}
