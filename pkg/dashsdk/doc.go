// Package dashsdk is the Go client for the homeroom daemon's facade.
//
// The daemon holds one dashboard session per workstation. A Client performs
// the unauthenticated calls (login, session status, health probes) and a
// successful login hands back a Session, which carries the bearer token for
// everything else:
//
//	client := dashsdk.NewClient("http://127.0.0.1:7350")
//
//	session, err := client.Login(ctx, "marie", "secret")
//	if err != nil {
//		// *dashsdk.APIError tells invalid credentials apart from a
//		// store outage worth retrying.
//		return err
//	}
//
//	views, err := session.Classes(ctx)
//	...
//
//	frames, errs := session.Stream(ctx)
//	for frame := range frames {
//		render(frame)
//	}
//
// The bearer token doubles as the daemon's durable session slot. Keep it:
// after a daemon restart the restored session answers to the same token, so
// the dashboard resumes without another login.
package dashsdk
