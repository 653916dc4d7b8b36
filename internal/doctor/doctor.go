// Package doctor diagnoses the local issuetop environment.
//
// Each check inspects one aspect of the setup (config file, token,
// state file, API reachability) and reports a result without modifying
// anything.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/issuetop/issuetop/internal/config"
	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/viewstate"
)

// Status classifies a check result.
type Status int

const (
	// OK means the check passed.
	OK Status = iota
	// Warn means something is suboptimal but issuetop still works.
	Warn
	// Fail means issuetop cannot work until this is fixed.
	Fail
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Warn:
		return "warn"
	default:
		return "fail"
	}
}

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Run executes all checks and returns their results in order.
func Run(ctx context.Context) []Result {
	cfg, cfgRes := checkConfig()
	results := []Result{
		cfgRes,
		checkToken(cfg),
		checkStateFile(),
		checkAPI(ctx, cfg),
	}
	return results
}

// checkConfig loads and validates the config file. A missing file is
// fine; a present but invalid one is not.
func checkConfig() (config.Config, Result) {
	cfg, err := config.Load()
	if err != nil {
		return config.Default(), Result{
			Name:   "config",
			Status: Fail,
			Detail: err.Error(),
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Default(), Result{
			Name:   "config",
			Status: Fail,
			Detail: err.Error(),
		}
	}
	return cfg, Result{Name: "config", Status: OK, Detail: "valid"}
}

// checkToken reports whether an API token is available. Unauthenticated
// use works but hits much lower rate limits.
func checkToken(cfg config.Config) Result {
	env := cfg.TokenEnv
	if env == "" {
		env = config.DefaultTokenEnv
	}
	if cfg.Token() == "" {
		return Result{
			Name:   "token",
			Status: Warn,
			Detail: fmt.Sprintf("%s not set, unauthenticated rate limit is 60 requests/hour", env),
		}
	}
	return Result{Name: "token", Status: OK, Detail: "found in $" + env}
}

// checkStateFile verifies the view-state file location is usable.
func checkStateFile() Result {
	path, err := viewstate.Path()
	if err != nil {
		return Result{Name: "state file", Status: Fail, Detail: err.Error()}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{Name: "state file", Status: Fail, Detail: err.Error()}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: "state file", Status: OK, Detail: path + " (will be created)"}
	} else if err != nil {
		return Result{Name: "state file", Status: Fail, Detail: err.Error()}
	}
	return Result{Name: "state file", Status: OK, Detail: path}
}

// checkAPI issues a minimal request to verify the API is reachable with
// the current credentials.
func checkAPI(ctx context.Context, cfg config.Config) Result {
	client := githubapi.NewClient(cfg.Token(), githubapi.WithRetryPolicy(1, time.Second, time.Second))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := client.ListIssues(ctx, "golang", "go", githubapi.ListOptions{
		Page:    1,
		PerPage: 1,
		State:   "open",
	})
	switch {
	case err == nil:
		return Result{Name: "api", Status: OK, Detail: "reachable"}
	case errors.Is(err, githubapi.ErrRateLimited):
		return Result{Name: "api", Status: Warn, Detail: "reachable but rate limited"}
	default:
		return Result{Name: "api", Status: Fail, Detail: err.Error()}
	}
}
