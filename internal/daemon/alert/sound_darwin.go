//go:build darwin

package alert

func playerCommand(file string) (string, []string) {
	return "afplay", []string{file}
}
