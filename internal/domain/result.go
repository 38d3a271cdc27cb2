package domain

import "strings"

// Result is a display-ready entry for the launcher.
type Result struct {
	Title    string // basename, ".exe" suffix stripped
	SubTitle string // containing directory
	IcoPath  string // the launcher extracts the icon from the target itself
	Path     string // launch target
}

// ResultFromMatch formats a ranked match for display.
func ResultFromMatch(m Match) Result {
	title := m.Base
	if strings.HasSuffix(title, ".exe") {
		title = strings.TrimSuffix(title, ".exe")
	}
	return Result{
		Title:    title,
		SubTitle: m.Dir,
		IcoPath:  m.Path,
		Path:     m.Path,
	}
}
