//go:build windows

package launch

import (
	"os/exec"
	"path/filepath"
	"syscall"
)

// defaultStarter opens the target through the shell so shortcuts and
// documents resolve to their associated application. The working directory
// is the containing folder, matching what a double-click would do.
type defaultStarter struct{}

func (defaultStarter) Start(path string) error {
	cmd := exec.Command("cmd", "/c", "start", "", path)
	cmd.Dir = filepath.Dir(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	return startDetached(cmd)
}
