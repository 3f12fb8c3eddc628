package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Dispatch whitelisted actions through a middleware chain"
	MsgDispatchShort = "Dispatch an action and record it in the journal"
	MsgValidateShort = "Check action types against the whitelist"
	MsgActionsShort  = "List the whitelisted action types"
	MsgDescribeShort = "Describe the configured dispatcher"
	MsgJournalShort  = "Print the recorded actions"
	MsgConfigShort   = "Print the effective configuration"
	MsgVersionShort  = "Print version information"

	// Status messages
	MsgDispatched    = "dispatched"
	MsgValid         = "✓"
	MsgInvalid       = "✗"
	MsgNoActions     = "No action types configured."
	MsgNoEntries     = "No actions recorded yet."
	MsgEntryFormat   = "#%d %s %s\n"
	MsgVersionFormat = "hermes version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is hermes.toml or hermes.yaml in the working directory)"
	MsgFlagJournal  = "Journal file, overriding the configured path"
	MsgFlagFormat   = "Output format: auto, term or text"
	MsgFlagData     = "Action data as JSON"
	MsgFlagMeta     = "Metadata entry as key=value (repeatable)"
	MsgFlagMetaJSON = "Metadata as a JSON object"
	MsgFlagType     = "Only print entries of this action type"
	MsgFlagDefaults = "Print the built-in defaults instead of the effective configuration"
)

// Long messages
const (
	MsgRootLong = `hermes validates actions against a whitelist of types and sends them
through an ordered middleware chain before they reach the journal.

Configuration is read from embedded defaults, then hermes.toml or
hermes.yaml, then HERMES_ environment variables.`

	MsgDispatchLong = `Dispatch validates TYPE, attaches the given data and metadata, runs the
configured middleware and appends the action to the journal.

Metadata given with --meta-json must decode to a JSON object.`

	MsgDispatchExample = `  hermes dispatch USER_LOGIN --data '{"user":"alice"}'
  hermes dispatch NOTIFICATION --meta source=api --meta priority=high
  hermes dispatch NEW_MESSAGE --meta-json '{"thread":42}'`

	MsgValidateExample = `  hermes validate USER_LOGIN NOTIFICATION`
)

// MsgUsageTemplate is cobra's usage template with bold section headings.
const MsgUsageTemplate = `{{bold "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{bold "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{bold "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{bold "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{bold "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{bold "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
