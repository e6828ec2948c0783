package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/jinline"
	"github.com/calumari/jinline/internal/cli/ui"
	"github.com/calumari/jinline/store"
)

func newCleanCommand(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Strip control characters from a JSON file and pretty-print it",
		Long: `Remove control characters that make JSON unparsable, then re-indent the
document with two spaces. The result is printed; --write replaces the file.

Text that still does not parse is reported and the file is left as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.reporter(cmd)
			f := &store.File{Fs: a.fs, Path: args[0]}
			b, err := f.Bytes()
			if err != nil {
				r.Fail(ui.Failure{Attempted: "read", Reason: err.Error()})
				return reportedError{err}
			}

			clean, err := jinline.Sanitize(string(b))
			if err != nil {
				r.Fail(ui.Failure{
					Attempted: "clean",
					Reason:    err.Error(),
					Excerpt:   excerptOf(string(b), a.cfg.ExcerptLen),
				})
				return reportedError{err}
			}
			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), clean)
				return nil
			}
			if err := f.SaveRaw([]byte(clean)); err != nil {
				r.Fail(ui.Failure{Attempted: "save", Reason: err.Error()})
				return reportedError{err}
			}
			r.Success("cleaned %s", f.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the file with the cleaned document")
	return cmd
}
