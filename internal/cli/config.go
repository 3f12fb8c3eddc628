package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hermes/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			if defaults {
				p.Printf("%s", config.DefaultsContent())
				return nil
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			rendered, err := cfg.TOML()
			if err != nil {
				return err
			}
			if cfg.Source != "" {
				p.Println(p.Muted("# loaded from " + cfg.Source))
			}
			p.Printf("%s", rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
