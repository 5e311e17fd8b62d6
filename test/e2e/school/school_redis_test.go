package school_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	redisstore "github.com/campuskit/homeroom/internal/school/store/drivers/redis"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedisContainer boots a disposable Redis and returns its URL. The
// test is skipped when no container runtime is available, so the rest of
// the suite stays runnable on a bare machine.
func startRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("skipping, could not start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

// TestRedisStoreEndToEnd runs the everyday flow against a real Redis, so
// the driver's pubsub change feed gets exercised outside miniredis, then
// restarts the daemon and checks the shared data and the session survive.
func TestRedisStoreEndToEnd(t *testing.T) {
	url := startRedisContainer(t)
	dir := t.TempDir()

	db, err := redisstore.NewStore(url, "homeroom-e2e")
	require.NoError(t, err)

	d := startDaemonOn(t, dir, db)

	admin := loginAdmin(t, d.Client)

	health, err := d.Client.Readyz(t.Context())
	require.NoError(t, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Store)

	fixture := seedRoster(t, admin)
	classes := waitForClasses(t, admin, 2)
	require.ElementsMatch(t, []string{"7A", "7B"}, classNames(classes))

	_, err = admin.CreateAnnouncement(t.Context(), dashsdk.CreateAnnouncementRequest{Title: "Stored in Redis"})
	require.NoError(t, err)

	adminToken := admin.Token()
	adminUser := admin.User()

	t.Log("restarting the daemon against the same redis")
	d.stop()

	db2, err := redisstore.NewStore(url, "homeroom-e2e")
	require.NoError(t, err)
	d2 := startDaemonOn(t, dir, db2)
	defer d2.stop()

	resumed := d2.Client.ResumeSession(adminToken, adminUser)
	classes = waitForClasses(t, resumed, 2)
	require.ElementsMatch(t, []string{"7A", "7B"}, classNames(classes))

	notes, err := resumed.Announcements(t.Context())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Stored in Redis", notes[0].Title)

	student, err := d2.Client.Login(t.Context(), "billie", studentBPassword)
	require.NoError(t, err)
	require.Equal(t, fixture.ClassB.ID, student.User().ClassID)
}
