package launch

import "os/exec"

// startDetached starts the command and reaps it in the background.
// Openers like cmd.exe and xdg-open exit almost immediately; without the
// Wait they would pile up as zombies for the life of the plugin process.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
