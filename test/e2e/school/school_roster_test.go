package school_test

import (
	"testing"

	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/stretchr/testify/require"
)

// TestTeacherProvisioning creates a teacher without a password and checks
// the generated one is echoed back exactly once, at creation time.
func TestTeacherProvisioning(t *testing.T) {
	d := startDaemon(t, t.TempDir())
	defer d.stop()

	admin := loginAdmin(t, d.Client)

	created, err := admin.CreateTeacher(t.Context(), dashsdk.CreateTeacherRequest{
		Name:     "Nina Kovacs",
		Username: "nina",
		Subject:  "Physics",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Teacher.ID)
	require.Equal(t, "nina", created.Teacher.Username)
	require.Equal(t, "Physics", created.Teacher.Subject)
	require.Len(t, created.Password, 10, "omitted password should be generated")

	teachers, err := admin.Teachers(t.Context())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Equal(t, created.Teacher.ID, teachers[0].ID)

	t.Log("logging in with the generated password")
	session, err := d.Client.Login(t.Context(), "nina", created.Password)
	require.NoError(t, err)
	require.Equal(t, "teacher", session.User().Role)
	require.Equal(t, "Nina Kovacs", session.User().DisplayName)
}

// TestStudentProvisioning creates a class and a student in it, then signs
// the student in with the generated password.
func TestStudentProvisioning(t *testing.T) {
	d := startDaemon(t, t.TempDir())
	defer d.stop()

	admin := loginAdmin(t, d.Client)

	class, err := admin.CreateClass(t.Context(), dashsdk.CreateClassRequest{Name: "8C"})
	require.NoError(t, err)

	created, err := admin.CreateStudent(t.Context(), dashsdk.CreateStudentRequest{
		Name:     "Omar Haddad",
		Username: "omar",
		ClassID:  class.ID,
	})
	require.NoError(t, err)
	require.Len(t, created.Password, 10, "omitted password should be generated")
	require.Equal(t, class.ID, created.Student.ClassID)

	session, err := d.Client.Login(t.Context(), "omar", created.Password)
	require.NoError(t, err)
	require.Equal(t, "student", session.User().Role)
	require.Equal(t, class.ID, session.User().ClassID)
	require.Equal(t, "8C", session.User().ClassName)
}

// TestRosterWritesAreAdminOnly walks the create endpoints as a teacher and
// a student and expects a 403 before any record is written.
func TestRosterWritesAreAdminOnly(t *testing.T) {
	d := startDaemon(t, t.TempDir())
	defer d.stop()

	admin := loginAdmin(t, d.Client)
	seedRoster(t, admin)

	teacher, err := d.Client.Login(t.Context(), "marie", teacherAPassword)
	require.NoError(t, err)

	_, err = teacher.CreateTeacher(t.Context(), dashsdk.CreateTeacherRequest{Name: "X", Username: "x"})
	requireAPIError(t, err, dashsdk.ErrorCodeForbidden)

	_, err = teacher.CreateClass(t.Context(), dashsdk.CreateClassRequest{Name: "7C"})
	requireAPIError(t, err, dashsdk.ErrorCodeForbidden)

	_, err = teacher.CreateStudent(t.Context(), dashsdk.CreateStudentRequest{Name: "X", Username: "x2"})
	requireAPIError(t, err, dashsdk.ErrorCodeForbidden)

	student, err := d.Client.Login(t.Context(), "alex", studentAPassword)
	require.NoError(t, err)

	_, err = student.CreateClass(t.Context(), dashsdk.CreateClassRequest{Name: "7D"})
	requireAPIError(t, err, dashsdk.ErrorCodeForbidden)

	// Nothing leaked through while the wrong roles had the keyboard.
	admin = loginAdmin(t, d.Client)
	classes := waitForClasses(t, admin, 2)
	require.ElementsMatch(t, []string{"7A", "7B"}, classNames(classes))
}

// TestCreateClassReportsMissingSupervisor points the supervisor assignment
// at an id that is not a teacher. The class append lands, the assignment
// does not, and the response says so.
func TestCreateClassReportsMissingSupervisor(t *testing.T) {
	d := startDaemon(t, t.TempDir())
	defer d.stop()

	admin := loginAdmin(t, d.Client)
	fixture := seedRoster(t, admin)

	// A student id parses fine but resolves to no teacher record.
	_, err := admin.CreateClass(t.Context(), dashsdk.CreateClassRequest{
		Name:         "7C",
		SupervisorID: fixture.StudentA.ID,
	})
	apiErr := requireAPIError(t, err, dashsdk.ErrorCodeNotFound)
	require.Contains(t, apiErr.Description, "class itself was created")

	classes := waitForClasses(t, admin, 3)
	require.ElementsMatch(t, []string{"7A", "7B", "7C"}, classNames(classes))
}
