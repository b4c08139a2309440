package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// curl exit code 56 is "recv() failure": the plan server closes without
// close_notify (old IIS) but the body is still fully received.
const curlRecvFailure = 56

// CurlClient fetches the plan feed through the system curl binary. Some
// hosts only accept the native TLS stack's fingerprint, which curl uses
// and the Go TLS stack does not.
type CurlClient struct {
	logger   *slog.Logger
	curlPath string
	baseURL  string
	timeout  time.Duration
}

func NewCurlClient(
	logger *slog.Logger,
	curlPath string,
	baseURL string,
	timeout time.Duration,
) *CurlClient {
	return &CurlClient{
		logger:   logger,
		curlPath: curlPath,
		baseURL:  baseURL,
		timeout:  timeout,
	}
}

func (c *CurlClient) Fetch(
	ctx context.Context,
	groupID string,
	week int,
) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid plan url: %w", err)
	}

	query := u.Query()
	query.Set("type", "0")
	query.Set("id", groupID)
	query.Set("cvsfile", "true")
	query.Set("w", strconv.Itoa(week))
	u.RawQuery = query.Encode()

	// Give curl a grace period past its own --max-time before the context
	// kills the process.
	ctx, cancel := context.WithTimeout(ctx, c.timeout+5*time.Second)
	defer cancel()

	maxTime := strconv.Itoa(int(c.timeout.Seconds()))

	//nolint:gosec //curlPath comes from config, not request input
	cmd := exec.CommandContext(
		ctx,
		c.curlPath,
		"-s", "-k", "--max-time", maxTime,
		u.String(),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: curl exceeded %s", ErrTimeout, c.timeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == curlRecvFailure {
			c.logger.Warn(
				"plan server closed connection without clean shutdown, body received",
				"group_id", groupID,
				"week", week,
			)
		} else {
			// curl maps its own --max-time expiry to exit code 28.
			if exitErr != nil && exitErr.ExitCode() == 28 {
				return "", fmt.Errorf("%w: curl exceeded %s", ErrTimeout, c.timeout)
			}
			return "", fmt.Errorf(
				"%w: curl failed: %v: %s",
				ErrTransport, err, strings.TrimSpace(stderr.String()),
			)
		}
	}

	content := stdout.String()
	if !strings.HasPrefix(strings.TrimSpace(content), calendarMarker) {
		return "", fmt.Errorf("%w: missing %s marker", ErrInvalidFormat, calendarMarker)
	}

	return content, nil
}
