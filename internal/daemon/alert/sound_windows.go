//go:build windows

package alert

import "strings"

func playerCommand(file string) (string, []string) {
	quoted := "'" + strings.ReplaceAll(file, "'", "''") + "'"
	script := "(New-Object Media.SoundPlayer " + quoted + ").PlaySync()"
	return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}
}
