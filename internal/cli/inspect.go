package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hermes/pkg/actions"
	"github.com/arthur-debert/hermes/pkg/config"
	"github.com/arthur-debert/hermes/pkg/types"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate TYPE...",
		Short:   MsgValidateShort,
		Example: MsgValidateExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			d, err := buildDispatcher(cfg, func(types.Action) (struct{}, error) {
				return struct{}{}, nil
			})
			if err != nil {
				return err
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			var first error
			for _, name := range args {
				if _, err := d.ValidateType(name); err != nil {
					p.Printf("%s %s\n", p.Error(MsgInvalid), name)
					if first == nil {
						first = err
					}
					continue
				}
				p.Printf("%s %s\n", p.Success(MsgValid), p.Type(name))
			}
			return first
		},
	}
}

func newActionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "actions",
		Short:   MsgActionsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			list := sortedActions(cfg)
			if len(list) == 0 {
				p.Println(p.Muted(MsgNoActions))
				return nil
			}

			if !p.Color() {
				for _, t := range list {
					p.Println(t)
				}
				return nil
			}

			items := make([]pterm.BulletListItem, len(list))
			for i, t := range list {
				items[i] = pterm.BulletListItem{Level: 0, Text: p.Type(t)}
			}
			rendered, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return err
			}
			p.Printf("%s", rendered)
			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "describe",
		Short:   MsgDescribeShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			p.Printf("%s", p.RenderMarkdown(describeMarkdown(cfg)))
			return nil
		},
	}
}

func sortedActions(cfg *config.Config) []string {
	set, err := actions.NewSet(cfg.Actions)
	if err != nil {
		return nil
	}
	return set.List()
}

// describeMarkdown summarizes the dispatcher a configuration produces.
func describeMarkdown(cfg *config.Config) string {
	var b strings.Builder

	b.WriteString("# hermes\n\n")
	if cfg.Source != "" {
		fmt.Fprintf(&b, "Configuration loaded from `%s`.\n\n", cfg.Source)
	} else {
		b.WriteString("Using built-in configuration.\n\n")
	}

	b.WriteString("## Actions\n\n")
	for _, t := range sortedActions(cfg) {
		fmt.Fprintf(&b, "- `%s`\n", t)
	}

	b.WriteString("\n## Middleware\n\n")
	if len(cfg.Middleware) == 0 {
		b.WriteString("None, actions go straight to the journal.\n")
	}
	for i, name := range cfg.Middleware {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, name)
	}

	b.WriteString("\n## Journal\n\n")
	fmt.Fprintf(&b, "- path: `%s`\n", journalPath(cfg))
	fmt.Fprintf(&b, "- format: `%s`\n", cfg.Journal.Format)
	fmt.Fprintf(&b, "- guard next: `%t`\n", cfg.GuardNext)

	return b.String()
}
