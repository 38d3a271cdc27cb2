package domain

import "strings"

// Candidate is a single file returned by the engine for a query, before
// ranking.
type Candidate struct {
	Path     string // full path
	Dir      string // containing directory, as reported by the engine
	Base     string // lowercase basename
	RunCount int64  // times launched through the plugin
}

// NewCandidate builds a candidate from the directory and file name the
// engine reports. The full path keeps the directory's own separator style,
// so Windows paths survive processing on any platform.
func NewCandidate(dir, name string, runCount int64) Candidate {
	return Candidate{
		Path:     JoinPath(dir, name),
		Dir:      dir,
		Base:     strings.ToLower(name),
		RunCount: runCount,
	}
}

// JoinPath joins dir and name using the separator dir already uses,
// defaulting to a forward slash.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	sep := "/"
	if strings.Contains(dir, `\`) {
		sep = `\`
	}
	return strings.TrimRight(dir, sep) + sep + name
}

// Candidates groups engine hits by lowercase basename. All paths sharing a
// basename are rated once and surfaced together.
type Candidates map[string][]Candidate

// Match is a ranked candidate. Lower Rate means a closer match.
type Match struct {
	Candidate
	Rate float64
}
