package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/models"
)

var settingsForce bool

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Inspect or create the settings file",
	Long: `Inspect or create ~/.pingwatch/settings.yaml.

Values can also be overridden with PINGWATCH_* environment variables,
for example PINGWATCH_LISTEN__PORT=17000 or PINGWATCH_ALERT__POLICY=queue.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		return writeSettings(cmd.OutOrStdout(), settings)
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initSettings(settingsForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.ok.Render("Wrote"), path)
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	settingsInitCmd.Flags().BoolVarP(&settingsForce, "force", "f", false, "Overwrite an existing settings file")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}

func writeSettings(w io.Writer, settings *models.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

// initSettings writes the defaults unless a file already exists and force
// is unset. It returns the path written.
func initSettings(force bool) (string, error) {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return "", err
	}
	if config.FileExists(path) && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.EnsureGlobalDir(); err != nil {
		return "", err
	}
	if err := config.SaveSettings(models.NewSettings()); err != nil {
		return "", err
	}
	return path, nil
}
