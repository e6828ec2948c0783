package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/jinline"
	"github.com/calumari/jinline/internal/cli/ui"
	"github.com/calumari/jinline/store"
)

func newInlineCommand(a *app) *cobra.Command {
	var dryRun, patch bool

	cmd := &cobra.Command{
		Use:   "inline <file>",
		Short: "Inline the nested script JSON of a saved file",
		Long: `Find the first string field named "script" (or --key) in a saved JSON file,
decode the JSON it holds and store the result in its place.

With --dry-run the change is shown as a diff and nothing is written. With
--patch the change is printed as an RFC 6902 JSON Patch.`,
		Example: `  jinline inline script_abc123.json
  jinline inline --dry-run script_abc123.json
  jinline inline --patch --key payload data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.reporter(cmd)
			f := &store.File{Fs: a.fs, Path: args[0]}
			in, err := jinline.New(a.cfg.InlineOptions(), jinline.WithLogger(a.log))
			if err != nil {
				return err
			}
			r.Info("searching %s for %q", f.Path, in.Key())
			if !dryRun && !patch {
				return a.inlineFile(r, f, in)
			}
			return a.previewInline(cmd, r, f, in, dryRun, patch)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show a diff instead of writing the file")
	cmd.Flags().BoolVar(&patch, "patch", false, "print the change as a JSON Patch instead of writing the file")
	return cmd
}

// previewInline inlines an in-memory copy of f and prints the change.
func (a *app) previewInline(cmd *cobra.Command, r *ui.Reporter, f *store.File, in *jinline.Inliner, diff, patch bool) error {
	doc, err := f.Load()
	if err != nil {
		r.Fail(ui.Failure{Attempted: "load", Reason: err.Error()})
		return reportedError{err}
	}
	before, err := jinline.Format(doc)
	if err != nil {
		return err
	}
	res, err := in.Inline(doc)
	if ferr := r.Outcome(res, err); ferr != nil {
		return ferr
	}
	if err != nil {
		return nil
	}

	out := cmd.OutOrStdout()
	if diff {
		after, err := jinline.Format(doc)
		if err != nil {
			return err
		}
		ui.NewReporter(out, a.cfg.NoColor).Diff(string(before), string(after))
	}
	if patch {
		b, err := res.Patch()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	}
	r.Step("dry run: %s was not modified", f.Path)
	return nil
}
