package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hermes/pkg/journal"
)

func newDispatchCmd(a *app) *cobra.Command {
	var (
		data     string
		meta     []string
		metaJSON string
	)

	cmd := &cobra.Command{
		Use:     "dispatch TYPE",
		Short:   MsgDispatchShort,
		Long:    MsgDispatchLong,
		Example: MsgDispatchExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			payload, err := decodeJSON("data", data)
			if err != nil {
				return err
			}

			j, err := a.openJournal(cfg)
			if err != nil {
				return err
			}

			d, err := buildDispatcher(cfg, j.Dispatch)
			if err != nil {
				return err
			}

			var receipt journal.Receipt
			switch {
			case cmd.Flags().Changed("meta-json"):
				raw, err := decodeJSON("meta-json", metaJSON)
				if err != nil {
					return err
				}
				receipt, err = d.DispatchWithMeta(args[0], payload, raw)
				if err != nil {
					return err
				}
			case len(meta) > 0:
				m, err := parseMetaPairs(meta)
				if err != nil {
					return err
				}
				receipt, err = d.DispatchWithMeta(args[0], payload, m)
				if err != nil {
					return err
				}
			default:
				receipt, err = d.Dispatch(args[0], payload)
				if err != nil {
					return err
				}
			}

			log.Info().
				Str("type", receipt.Type).
				Int("seq", receipt.Seq).
				Msg("Action recorded")

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			p.Printf("%s %s\n", p.Success(MsgDispatched), p.Type(receipt.Type))
			p.Field("id", receipt.ID)
			p.Field("seq", receipt.Seq)
			p.Field("journal", receipt.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", MsgFlagData)
	cmd.Flags().StringArrayVar(&meta, "meta", nil, MsgFlagMeta)
	cmd.Flags().StringVar(&metaJSON, "meta-json", "", MsgFlagMetaJSON)
	cmd.MarkFlagsMutuallyExclusive("meta", "meta-json")

	return cmd
}
