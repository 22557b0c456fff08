// Package shell locates commands on the host.
package shell

import (
	"os/exec"

	"github.com/pvm-php/pvm/internal/utils/logger"
)

var log = logger.Logger()

// IsCommandExist checks if a command resolves on the host PATH
func IsCommandExist(cmd string) bool {
	path, err := CommandPath(cmd)
	if err != nil {
		log.Debugf("Command %s not found: %v", cmd, err)
		return false
	}
	log.Debugf("Found command %s at %s", cmd, path)
	return true
}

// CommandPath returns the absolute path of cmd.
func CommandPath(cmd string) (string, error) {
	return exec.LookPath(cmd)
}
