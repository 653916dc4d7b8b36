// Package viewstate persists the small bits of UI state that survive
// restarts: column visibility per repository and the list of recently
// viewed repositories (which feeds the repo picker).
//
// Issue data itself is never persisted; the accumulation cache lives and
// dies with the running table.
package viewstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RepoState is the persisted state for one owner/repo.
type RepoState struct {
	Columns    map[string]bool `json:"columns,omitempty"` // column id -> visible
	LastViewed time.Time       `json:"last_viewed"`
}

// State maps "owner/repo" to its persisted view state.
type State struct {
	Repos map[string]*RepoState `json:"repos"`
}

// Path returns the default state file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "issuetop", "state.json"), nil
}

// Load reads the state file. A missing or corrupted file yields a fresh
// empty state rather than an error; this data is best-effort.
func Load(path string) *State {
	fresh := &State{Repos: make(map[string]*RepoState)}

	data, err := os.ReadFile(path)
	if err != nil {
		return fresh
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return fresh
	}
	if s.Repos == nil {
		s.Repos = make(map[string]*RepoState)
	}
	return &s
}

// Save writes the state file atomically (temp file + rename).
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

func (s *State) repo(key string) *RepoState {
	if r, ok := s.Repos[key]; ok {
		return r
	}
	r := &RepoState{}
	s.Repos[key] = r
	return r
}

// Columns returns the stored column visibility for a repo, or nil when
// nothing was stored (callers fall back to config defaults).
func (s *State) Columns(repoKey string) map[string]bool {
	if r, ok := s.Repos[repoKey]; ok {
		return r.Columns
	}
	return nil
}

// SetColumns stores column visibility for a repo.
func (s *State) SetColumns(repoKey string, cols map[string]bool) {
	s.repo(repoKey).Columns = cols
}

// Touch records a visit to a repo so it surfaces in Recent.
func (s *State) Touch(repoKey string, now time.Time) {
	s.repo(repoKey).LastViewed = now
}

// Recent returns up to limit repo keys, most recently viewed first.
// A non-positive limit returns all of them.
func (s *State) Recent(limit int) []string {
	keys := make([]string, 0, len(s.Repos))
	for k := range s.Repos {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := s.Repos[keys[i]].LastViewed, s.Repos[keys[j]].LastViewed
		if a.Equal(b) {
			return keys[i] < keys[j]
		}
		return a.After(b)
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
