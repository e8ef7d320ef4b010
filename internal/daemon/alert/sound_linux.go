//go:build linux

package alert

import "os/exec"

func playerCommand(file string) (string, []string) {
	for _, player := range []string{"paplay", "aplay"} {
		if path, err := exec.LookPath(player); err == nil {
			return path, []string{file}
		}
	}
	return "", nil
}
