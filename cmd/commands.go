package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quocvuong92/fs-cli/internal/command"
)

func newEchoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "echo <text>",
		Short: "Echo the input string to the terminal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.dispatch(command.Echo{Text: args[0]})
		},
	}
}

func newCatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a file's contents",
		Long: `Print a file's contents line by line.

Lines that are not valid UTF-8 are reported on stderr and skipped.

Examples:
  fs-cli cat notes.txt
  fs-cli cat -r README.md`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.dispatch(command.Cat{Path: args[0]})
		},
	}
	cmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render Markdown with colors and formatting")
	cmd.Flags().IntVar(&app.cfg.WordWrap, "width", 0, "Word wrap column for --render (default: 80)")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List files and directories in the specified path",
		Long: `List the immediate entries of a directory (default: current directory).

Each line shows the entry type (File, Directory or Other), its size in
bytes and its name. Entry order is not guaranteed.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			app.dispatch(command.NewList(path))
		},
	}
}

func newFindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <path> <filename>",
		Short: "Find files in a directory by name",
		Long: `Recursively search <path> for files named exactly <filename>.

Matching is case-sensitive with no wildcards. Directories are searched but
never matched, and symbolic links are not followed. An unreadable
subdirectory stops the search unless --skip-unreadable is set.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			app.dispatch(command.Find{Root: args[0], Target: args[1]})
		},
	}
	cmd.Flags().BoolVar(&app.cfg.SkipUnreadable, "skip-unreadable", false, "Report unreadable subdirectories and keep searching")
	return cmd
}

func newGrepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "minigrep <pattern> <file>",
		Aliases: []string{"mini-grep"},
		Short:   "Search for a pattern in a file",
		Long: `Print every line of <file> containing <pattern>, prefixed by its line number.

The pattern is a literal, case-sensitive substring; regular expression
characters have no special meaning.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			app.dispatch(command.Grep{Pattern: args[0], Path: args[1]})
		},
	}
}
