package school_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	schoolhttp "github.com/campuskit/homeroom/internal/school/http"
	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/internal/school/slot"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/internal/school/store/drivers/sqlite"
	"github.com/campuskit/homeroom/pkg/cryptox"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
	"github.com/campuskit/homeroom/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * Common constants and helper functions for daemon end-to-end tests. Each
 * test starts a full in-process daemon (store, services, router) in a
 * temporary directory and drives it through the dashsdk client only, the
 * same way the dashboard would.
 */

const (
	adminUsername = "principal"
	adminPassword = "Principal123!"
	adminName     = "The Principal"

	teacherAPassword = "ChalkDust42!"
	teacherBPassword = "RedPen77!"
	studentAPassword = "initial-a"
	studentBPassword = "initial-b"

	issuer = "homeroom-e2e"

	// waitFor bounds every poll for view propagation. Store watches are
	// push-based, so real latency is milliseconds.
	waitFor = 5 * time.Second
	tick    = 20 * time.Millisecond
)

// TestMain raises the rate limits for the whole suite. The flows below log
// in far more often than a real dashboard would, and the strict login
// profile would start rejecting them halfway through.
func TestMain(m *testing.M) {
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed

	os.Exit(m.Run())
}

// daemon is one in-process homeroomd instance. Starting a second daemon on
// the same directory simulates a workstation reboot: same shared store,
// same machine secret, same session slot.
type daemon struct {
	t *testing.T

	Server *httptest.Server
	Client *dashsdk.Client

	db    store.Store
	views *service.ViewService
}

// startDaemon wires a daemon on a SQLite store inside dir.
func startDaemon(t *testing.T, dir string) *daemon {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", filepath.Join(dir, "homeroom.db"))
	db, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations())

	return startDaemonOn(t, dir, db)
}

// startDaemonOn wires a daemon on an externally provided store. The redis
// conformance test injects a containerised one here.
func startDaemonOn(t *testing.T, dir string, db store.Store) *daemon {
	t.Helper()
	ctx := context.Background()

	secret, err := cryptox.LoadOrCreateSecret(filepath.Join(dir, "machine.secret"))
	require.NoError(t, err)

	sealer, err := jwtx.NewHS256(cryptox.DeriveKey(secret, "session-slot"), issuer)
	require.NoError(t, err)

	fileSlot, err := slot.NewFile(filepath.Join(dir, "session.slot"))
	require.NoError(t, err)
	sessionSlot := slot.NewSealed(fileSlot, cryptox.DeriveKey(secret, "slot-at-rest"))

	seed := &service.BootstrapService{
		Store:         db,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
		AdminName:     adminName,
	}
	require.NoError(t, seed.Seed(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := &service.SessionService{
		Store:  db,
		Slot:   sessionSlot,
		Sealer: sealer,
		Issuer: issuer,
	}
	views := service.NewViewService(db, sessions, logger)
	roster := &service.RosterService{Store: db, Sessions: sessions, Views: views}

	sessions.Restore(ctx)
	views.Start()

	router := schoolhttp.NewRouter(sealer, "e2e", db, logger)
	router.Sessions = sessions
	router.Views = views
	router.Roster = roster
	router.ApplyRoutes()

	server := httptest.NewServer(router)

	return &daemon{
		t:      t,
		Server: server,
		Client: dashsdk.NewClient(server.URL),
		db:     db,
		views:  views,
	}
}

// stop shuts the daemon down the way a reboot would: server first, then the
// view service, then the store. The session slot file is left alone.
func (d *daemon) stop() {
	d.Server.Close()
	d.views.Stop()
	require.NoError(d.t, d.db.Close())
}

// loginAdmin authenticates the seeded admin account.
func loginAdmin(t *testing.T, client *dashsdk.Client) *dashsdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err, "admin login should succeed")
	require.Equal(t, "admin", session.User().Role)

	return session
}

// rosterFixture is the standard school seeded through the API: two teachers
// (the second one supervising class B), a class per teacher and a student
// in each class.
type rosterFixture struct {
	TeacherA dashsdk.Teacher
	TeacherB dashsdk.Teacher
	ClassA   dashsdk.Class
	ClassB   dashsdk.Class
	StudentA dashsdk.Student
	StudentB dashsdk.Student
}

// seedRoster builds the fixture with the given admin session.
func seedRoster(t *testing.T, admin *dashsdk.Session) rosterFixture {
	t.Helper()
	ctx := t.Context()

	teacherA, err := admin.CreateTeacher(ctx, dashsdk.CreateTeacherRequest{
		Name:     "Marie Durand",
		Username: "marie",
		Password: teacherAPassword,
		Subject:  "Mathematics",
	})
	require.NoError(t, err)

	teacherB, err := admin.CreateTeacher(ctx, dashsdk.CreateTeacherRequest{
		Name:     "Jonas Weber",
		Username: "jonas",
		Password: teacherBPassword,
		Subject:  "History",
	})
	require.NoError(t, err)

	classA, err := admin.CreateClass(ctx, dashsdk.CreateClassRequest{
		Name:      "7A",
		TeacherID: teacherA.Teacher.ID,
	})
	require.NoError(t, err)

	classB, err := admin.CreateClass(ctx, dashsdk.CreateClassRequest{
		Name:         "7B",
		TeacherID:    teacherB.Teacher.ID,
		SupervisorID: teacherB.Teacher.ID,
	})
	require.NoError(t, err)

	studentA, err := admin.CreateStudent(ctx, dashsdk.CreateStudentRequest{
		Name:     "Alex Petit",
		Username: "alex",
		Password: studentAPassword,
		ClassID:  classA.ID,
	})
	require.NoError(t, err)

	studentB, err := admin.CreateStudent(ctx, dashsdk.CreateStudentRequest{
		Name:     "Billie Roux",
		Username: "billie",
		Password: studentBPassword,
		ClassID:  classB.ID,
	})
	require.NoError(t, err)

	return rosterFixture{
		TeacherA: teacherA.Teacher,
		TeacherB: teacherB.Teacher,
		ClassA:   classA,
		ClassB:   classB,
		StudentA: studentA.Student,
		StudentB: studentB.Student,
	}
}

// waitForClasses polls the class view until it reaches the wanted size.
// Roster writes land in the views via store watches, so a freshly created
// record is visible a beat later.
func waitForClasses(t *testing.T, session *dashsdk.Session, want int) []dashsdk.Class {
	t.Helper()

	var classes []dashsdk.Class
	require.Eventually(t, func() bool {
		var err error
		classes, err = session.Classes(t.Context())
		return err == nil && len(classes) == want
	}, waitFor, tick, "expected %d visible classes", want)

	return classes
}

// classNames projects the listing to names for order-insensitive asserts.
func classNames(classes []dashsdk.Class) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return names
}

// requireAPIError asserts err is a typed APIError with the given code.
func requireAPIError(t *testing.T, err error, code string) *dashsdk.APIError {
	t.Helper()

	require.Error(t, err)
	var apiErr *dashsdk.APIError
	require.ErrorAs(t, err, &apiErr, "expected a typed API error, got: %v", err)
	require.Equal(t, code, apiErr.Code)

	return apiErr
}
