package cli

import (
	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the fasttext executable",
	Long: `Download and build the configured fastText release in the work directory.

Other commands install fastText on first use; this command does it up front.
Use --force to rebuild an existing executable.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "reinstall even if the executable exists")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	text, err := requireText()
	if err != nil {
		return err
	}

	if !installForce && text.Installed() {
		cmd.Println("fastText is already installed.")
		return nil
	}

	cmd.Println("Installing fastText...")
	if err := text.Install(cmd.Context(), installForce); err != nil {
		return err
	}
	cmd.Println("fastText installed.")
	return nil
}
