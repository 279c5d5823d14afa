package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds what the commands share.
type cli struct {
	v   *viper.Viper
	app *app
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "refer",
		Short:         "Inspect referring-expression datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c.v, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c.app = a
			return a.startMetrics()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.app != nil {
				c.app.close()
			}
		},
	}

	setupFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		datasetsCommand(),
		c.statsCommand(),
		c.refsCommand(),
		c.annsCommand(),
		c.imgsCommand(),
		c.boxCommand(),
		c.maskCommand(),
		c.evalCommand(),
	)
	return rootCmd
}
