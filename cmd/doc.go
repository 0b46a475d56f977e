// Package cmd implements the cobra command tree for fs-cli.
//
// # Layout
//
//   - root.go: App struct, root command, persistent flags and setup
//   - commands.go: echo, cat, ls, find and minigrep subcommands
//   - config.go: config init and config show
//
// # Flow
//
// Cobra resolves the arguments of exactly one subcommand. The persistent
// pre-run hook resolves configuration (flags, environment, config file)
// and builds the logger, printer and dispatcher. Each subcommand then
// builds a command.Command value and hands it to the dispatcher, which
// reports errors on stderr without failing the command. Execute exits
// with status 1 only for argument errors, or when --strict is set and an
// error was reported.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
