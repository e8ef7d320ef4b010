package alert

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/gen2brain/beeep"
)

// SoundPlayer plays the alert sound.
type SoundPlayer interface {
	Play(ctx context.Context, file string) error
}

// SystemSound beeps through beeep, or plays file with the platform's
// command-line player when one is configured.
type SystemSound struct{}

// Play blocks until the sound finishes or ctx expires.
func (SystemSound) Play(ctx context.Context, file string) error {
	if file == "" {
		return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	if err := ValidateSoundFile(file); err != nil {
		return err
	}

	name, args := playerCommand(file)
	if name == "" {
		return fmt.Errorf("no sound player available on this platform")
	}
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("failed to play %s: %w", file, err)
	}
	return nil
}

// ValidateSoundFile checks that a configured sound file is usable.
func ValidateSoundFile(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("sound file %s: %w", file, err)
	}
	if info.IsDir() {
		return fmt.Errorf("sound file %s is a directory", file)
	}
	return nil
}

// SilentSound plays nothing.
type SilentSound struct{}

func (SilentSound) Play(context.Context, string) error { return nil }
