package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"greenline/internal/config"
	"greenline/internal/projects"
	"greenline/internal/services"
)

// Access is the permission set a directory check requires.
type Access uint32

const (
	AccessRead  Access = unix.R_OK | unix.X_OK
	AccessWrite Access = unix.R_OK | unix.W_OK | unix.X_OK
)

const probeTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and grants access.
func CheckDirectoryAccess(name, path string, access Access) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, uint32(access)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	label := "read ok"
	if access == AccessWrite {
		label = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckDataset verifies the dataset is writable and decodes cleanly.
func CheckDataset(path string) Result {
	const name = "Dataset"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	records, err := projects.Decode(data)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, services.UserMessage(err))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d projects)", path, len(records))}
}

// CheckArchive verifies the archive's directory is writable when archiving is enabled.
func CheckArchive(path string) Result {
	const name = "Submission archive"

	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Skipped: true, Detail: "Disabled"}
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		// Open creates missing parents, so check the nearest existing ancestor.
		for dir != filepath.Dir(dir) {
			dir = filepath.Dir(dir)
			if _, err := os.Stat(dir); err == nil {
				break
			}
		}
	}
	check := CheckDirectoryAccess(name, dir, AccessWrite)
	if check.Passed {
		check.Detail = path
	}
	return check
}

// CheckProviderConfig verifies the selected provider has what it needs to send.
func CheckProviderConfig(cfg *config.Config) Result {
	const name = "Email provider"

	switch cfg.Contact.Provider {
	case config.ProviderResend:
		if strings.TrimSpace(cfg.Contact.Resend.APIKey) == "" {
			return Result{Name: name, Detail: "resend: missing api key (set RESEND_API_KEY)"}
		}
		if len(cfg.Contact.Resend.To) == 0 {
			return Result{Name: name, Detail: "resend: no recipients"}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("resend -> %s", strings.Join(cfg.Contact.Resend.To, ", "))}
	case config.ProviderFormSubmit:
		detail := "formsubmit -> " + cfg.Contact.FormSubmit.AjaxEndpoint
		if cfg.Contact.FormSubmit.Fallback {
			detail += " (fallback enabled)"
		}
		return Result{Name: name, Passed: true, Detail: detail}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unknown provider %q", cfg.Contact.Provider)}
	}
}

// ProbeProvider checks that the provider endpoint answers. For Resend the API
// key is sent so an invalid key is reported.
func ProbeProvider(ctx context.Context, cfg *config.Config) Result {
	const name = "Provider reachability"

	checkCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		target string
		token  string
	)
	switch cfg.Contact.Provider {
	case config.ProviderResend:
		target = strings.TrimRight(cfg.Contact.Resend.BaseURL, "/") + "/domains"
		token = strings.TrimSpace(cfg.Contact.Resend.APIKey)
	case config.ProviderFormSubmit:
		target = cfg.Contact.FormSubmit.AjaxEndpoint
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unknown provider %q", cfg.Contact.Provider)}
	}

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeProbeError(err)}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case resp.StatusCode == http.StatusUnauthorized && strings.Contains(string(body), "restricted_api_key"):
		return Result{Name: name, Passed: true, Detail: "Reachable (sending-only api key)"}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	case resp.StatusCode < 500:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Reachable (status %d)", resp.StatusCode)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("provider error (%d)", resp.StatusCode)}
	}
}

func summarizeProbeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out (provider unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "probe timed out (provider unreachable)"
	}
	return err.Error()
}
