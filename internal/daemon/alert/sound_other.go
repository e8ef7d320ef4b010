//go:build !linux && !darwin && !windows

package alert

func playerCommand(string) (string, []string) {
	return "", nil
}
