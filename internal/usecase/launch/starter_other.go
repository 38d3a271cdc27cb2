//go:build !windows

package launch

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"syscall"
)

// defaultStarter opens the target with the desktop's default handler.
// The child gets its own process group so it survives the plugin exiting.
type defaultStarter struct{}

func (defaultStarter) Start(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	cmd := exec.Command(opener, path)
	cmd.Dir = filepath.Dir(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return startDetached(cmd)
}
