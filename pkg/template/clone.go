package template

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
)

// Clone performs a shallow clone of gitURL into dest. The failure code
// is classified from git's diagnostic output so callers can tell
// authentication, not-found, network, and timeout conditions apart.
func Clone(ctx context.Context, gitURL, dest string, timeout time.Duration) error {
	log := logging.GetLogger("template.clone")

	if _, err := exec.LookPath("git"); err != nil {
		return errors.New(errors.ErrToolMissing, "git is not installed or not in PATH")
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create clone directory %s", dest)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone", "--depth", "1", gitURL, dest)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug().
		Str("url", gitURL).
		Dur("duration", time.Since(start)).
		Bool("success", err == nil).
		Msg("git clone finished")

	if err != nil {
		if cloneCtx.Err() == context.DeadlineExceeded {
			return errors.Newf(errors.ErrCloneTimeout,
				"git clone timed out after %s: %s", timeout, gitURL)
		}
		if ctx.Err() == context.Canceled {
			return errors.New(errors.ErrInterrupted, "git clone cancelled")
		}
		return classifyCloneError(gitURL, stderr.String(), err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil || len(entries) == 0 {
		return errors.Newf(errors.ErrCloneFailed,
			"clone completed but directory is empty: %s", dest)
	}

	return nil
}

// classifyCloneError maps git's stderr text onto a failure code. The
// matching is substring-based on the lowercased output, mirroring the
// phrases current git versions emit.
func classifyCloneError(gitURL, stderr string, cause error) error {
	detail := strings.TrimSpace(stderr)
	lower := strings.ToLower(detail)

	var code errors.ErrorCode
	switch {
	case strings.Contains(lower, "authentication failed"), strings.Contains(lower, "permission denied"):
		code = errors.ErrCloneAuth
	case strings.Contains(lower, "repository not found"), strings.Contains(lower, "not found"):
		code = errors.ErrCloneNotFound
	case strings.Contains(lower, "network"), strings.Contains(lower, "connection"):
		code = errors.ErrCloneNetwork
	default:
		code = errors.ErrCloneFailed
	}

	err := errors.Wrapf(cause, code, "failed to clone repository %s", gitURL)
	if detail != "" {
		err = err.WithDetail("stderr", detail)
	}
	return err
}
