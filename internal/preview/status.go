package preview

import (
	"sync"

	"git.home.luguber.info/inful/issuebuilder/internal/site"
)

// buildStatus tracks the latest build for error display and health checks.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastOutcome  site.BuildOutcome
	hasGoodBuild bool // true once any build has succeeded
	builds       int
}

func (bs *buildStatus) record(report *site.BuildReport, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.builds++
	bs.lastError = err
	if report != nil {
		bs.lastOutcome = report.Outcome
	}
	if err == nil {
		bs.hasGoodBuild = true
	}
}

type statusSnapshot struct {
	Status       string `json:"status"`
	Outcome      string `json:"outcome,omitempty"`
	LastError    string `json:"last_error,omitempty"`
	Builds       int    `json:"builds"`
	HasGoodBuild bool   `json:"has_good_build"`
}

func (bs *buildStatus) snapshot() statusSnapshot {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	s := statusSnapshot{
		Status:       "ok",
		Outcome:      string(bs.lastOutcome),
		Builds:       bs.builds,
		HasGoodBuild: bs.hasGoodBuild,
	}
	switch {
	case bs.builds == 0:
		s.Status = "starting"
	case bs.lastError != nil:
		s.Status = "error"
		s.LastError = bs.lastError.Error()
	}
	return s
}
