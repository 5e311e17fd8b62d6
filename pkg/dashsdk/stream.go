package dashsdk

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxFrameSize caps a single stream event. Full snapshots for a school fit
// well under this.
const maxFrameSize = 4 * 1024 * 1024

// Stream subscribes to the daemon's view stream. Every event is a complete
// filtered snapshot; the first one arrives immediately, later ones whenever
// the visible data or the session changes.
//
// Both returned channels close when the stream ends. An error is delivered
// at most once and only when the stream ended abnormally; cancelling ctx
// ends it cleanly.
func (s *Session) Stream(ctx context.Context) (<-chan ViewsFrame, <-chan error) {
	frames := make(chan ViewsFrame)
	errs := make(chan error, 1)

	go func() {
		defer close(frames)
		defer close(errs)

		// The shared HTTP client enforces a request timeout, which would
		// sever a long-lived stream. Reuse its transport without it.
		streamClient := &http.Client{Transport: s.client.HTTPClient.Transport}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url("/v1/stream"), nil)
		if err != nil {
			errs <- fmt.Errorf("failed to create request: %w", err)
			return
		}
		req.Header.Set("Authorization", "Bearer "+s.token)
		req.Header.Set("Accept", "text/event-stream")

		resp, err := streamClient.Do(req)
		if err != nil {
			if ctx.Err() == nil {
				errs <- fmt.Errorf("failed to open stream: %w", err)
			}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			errs <- parseErrorResponse(resp, body)
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

		for scanner.Scan() {
			line := scanner.Text()
			// Only data lines matter; blank separators and comment
			// keep-alives (": ping") pass through unhandled.
			data, ok := strings.CutPrefix(line, "data: ")
			if !ok {
				continue
			}

			var frame ViewsFrame
			if err := json.Unmarshal([]byte(data), &frame); err != nil {
				errs <- fmt.Errorf("malformed stream frame: %w", err)
				return
			}

			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			errs <- fmt.Errorf("stream closed: %w", err)
		}
	}()

	return frames, errs
}
