package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

func newJournalCmd(a *app) *cobra.Command {
	var actionType string

	cmd := &cobra.Command{
		Use:     "journal",
		Short:   MsgJournalShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			j, err := a.openJournal(cfg)
			if err != nil {
				return err
			}

			entries, err := j.Read()
			if err != nil {
				return err
			}

			p, err := a.printer(cmd)
			if err != nil {
				return err
			}

			printed := 0
			for _, e := range entries {
				if actionType != "" && e.Type != actionType {
					continue
				}
				printed++

				p.Printf(MsgEntryFormat, e.Seq, p.Type(e.Type), p.Muted(e.Time.Format(time.RFC3339)))
				p.Field("  id", e.ID)
				if e.Data != nil {
					p.Field("  data", compactJSON(e.Data))
				}
				if len(e.Meta) > 0 {
					p.Field("  meta", compactJSON(e.Meta))
				}
			}

			if printed == 0 {
				p.Println(p.Muted(MsgNoEntries))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actionType, "type", "", MsgFlagType)
	return cmd
}

func compactJSON(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(out)
}
