package school_test

import (
	"testing"

	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/stretchr/testify/require"
)

// TestSessionSurvivesDaemonRestart simulates a workstation reboot: the
// daemon goes away and comes back on the same directory, and both the
// session and the bearer token the dashboard kept must still work.
func TestSessionSurvivesDaemonRestart(t *testing.T) {
	dir := t.TempDir()

	d1 := startDaemon(t, dir)
	admin := loginAdmin(t, d1.Client)
	fixture := seedRoster(t, admin)
	keptToken := admin.Token()
	keptUser := admin.User()

	d1.stop()
	d2 := startDaemon(t, dir)
	defer d2.stop()

	// The restarted daemon picked the session up from the slot.
	status, err := d2.Client.SessionStatus(t.Context())
	require.NoError(t, err)
	require.Equal(t, "authenticated", status.Phase)
	require.NotNil(t, status.User)
	require.Equal(t, "admin", status.User.Role)
	require.Equal(t, keptUser.ID, status.User.ID)

	// The token from before the restart still authenticates.
	resumed := d2.Client.ResumeSession(keptToken, keptUser)
	classes := waitForClasses(t, resumed, 2)
	require.ElementsMatch(t, []string{"7A", "7B"}, classNames(classes))

	// And it still authorizes mutations.
	_, err = resumed.CreateAnnouncement(t.Context(), dashsdk.CreateAnnouncementRequest{
		Title:   "Back after the reboot",
		ClassID: fixture.ClassA.ID,
	})
	require.NoError(t, err)

	t.Logf("session and token survived the restart")
}

// TestLogoutDoesNotSurviveRestart verifies the other direction: once logged
// out, a restart must come back unauthenticated and the old token stays
// dead.
func TestLogoutDoesNotSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	d1 := startDaemon(t, dir)
	admin := loginAdmin(t, d1.Client)
	keptToken := admin.Token()
	keptUser := admin.User()
	require.NoError(t, admin.Logout(t.Context()))

	d1.stop()
	d2 := startDaemon(t, dir)
	defer d2.stop()

	status, err := d2.Client.SessionStatus(t.Context())
	require.NoError(t, err)
	require.Equal(t, "unauthenticated", status.Phase)

	resumed := d2.Client.ResumeSession(keptToken, keptUser)
	_, err = resumed.Classes(t.Context())
	requireAPIError(t, err, dashsdk.ErrorCodeInvalidToken)
}

// TestStaleTokenAfterReloginAndRestart covers the replacement chain: login,
// login again, restart. Only the second token may resume.
func TestStaleTokenAfterReloginAndRestart(t *testing.T) {
	dir := t.TempDir()

	d1 := startDaemon(t, dir)
	first := loginAdmin(t, d1.Client)
	firstToken := first.Token()

	second := loginAdmin(t, d1.Client)
	secondToken := second.Token()
	require.NotEqual(t, firstToken, secondToken, "each login mints its own instance")

	d1.stop()
	d2 := startDaemon(t, dir)
	defer d2.stop()

	stale := d2.Client.ResumeSession(firstToken, first.User())
	_, err := stale.Classes(t.Context())
	requireAPIError(t, err, dashsdk.ErrorCodeInvalidToken)

	live := d2.Client.ResumeSession(secondToken, second.User())
	_, err = live.Classes(t.Context())
	require.NoError(t, err, "the latest token should resume after restart")
}
