package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calumari/jinline"
	"github.com/calumari/jinline/internal/cli/ui"
	"github.com/calumari/jinline/store"
)

const previewLen = 300

func newFetchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a script page, save its JSON and inline the script field",
		Long: `Rewrite the script page URL to its raw-data form, open it in a browser and
read the <pre> block. The text is cleaned, parsed, wrapped with a timestamp and
saved. The first string "script" field is then replaced by the JSON it holds.`,
		Example: `  jinline fetch https://janitorai.com/scripts/abc123
  jinline fetch -o out.json --headless https://janitorai.com/scripts/abc123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFetch(cmd, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "file to write (default script_<id>.json)")
	flags.String("driver", "", "browser driver: playwright or rod")
	flags.Bool("headless", false, "run the browser without a window")
	flags.Int("attempts", 0, "page reads before giving up")
	for key, flag := range map[string]string{
		"output":           "output",
		"browser.driver":   "driver",
		"browser.headless": "headless",
		"browser.attempts": "attempts",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func (a *app) runFetch(cmd *cobra.Command, rawURL string) error {
	r := a.reporter(cmd)
	rw := a.cfg.Rewriter()

	r.Info("original url: %s", rawURL)
	target, err := rw.Transform(rawURL)
	if err != nil {
		r.Fail(ui.Failure{Attempted: "rewrite url", Reason: err.Error()})
		return reportedError{err}
	}
	r.Info("data url: %s", target)

	output := a.cfg.Output
	if output == "" {
		id, err := rw.ID(rawURL)
		if err != nil {
			return err
		}
		output = fmt.Sprintf("script_%s.json", filepath.Base(id))
	}

	fetcher, err := a.newFetcher(a.cfg.Fetch(), a.log)
	if err != nil {
		return err
	}
	content, err := fetcher.Fetch(cmd.Context(), target)
	if err != nil {
		r.Fail(ui.Failure{
			Attempted: "fetch page",
			Reason:    err.Error(),
			Hints:     []string{"access may be blocked by a firewall or the <pre> block is missing"},
		})
		return reportedError{err}
	}
	r.Success("<pre> content received (%d chars)", len([]rune(content)))
	r.Preview(content, previewLen)

	clean, err := jinline.Sanitize(content)
	if err != nil {
		r.Warn("could not normalize page text: %v", err)
	}
	doc, err := jinline.Parse([]byte(clean))
	if err != nil {
		r.Fail(ui.Failure{
			Attempted: "parse page",
			Reason:    err.Error(),
			Excerpt:   excerptOf(content, a.cfg.ExcerptLen),
		})
		return reportedError{fmt.Errorf("parse page: %w", err)}
	}

	f := &store.File{Fs: a.fs, Path: output}
	if err := f.Save(store.Envelope(doc, a.now())); err != nil {
		r.Fail(ui.Failure{Attempted: "save", Reason: err.Error()})
		return reportedError{err}
	}
	r.Success("content saved to %s", output)
	a.log.Debug("envelope saved", zap.String("file", output))

	in, err := jinline.New(a.cfg.InlineOptions(), jinline.WithLogger(a.log))
	if err != nil {
		return err
	}
	r.Info("searching %s for %q", output, in.Key())
	return a.inlineFile(r, f, in)
}

// inlineFile runs the inline pass over f. Not-found and malformed nested
// values are reported and leave f untouched without failing the command.
func (a *app) inlineFile(r *ui.Reporter, f *store.File, in *jinline.Inliner) error {
	res, err := store.InlineFile(f, in, a.log)
	if ferr := r.Outcome(res, err); ferr != nil {
		r.Fail(ui.Failure{Attempted: "inline", Reason: ferr.Error()})
		return reportedError{ferr}
	}
	if err == nil {
		r.Success("file rewritten: %s", f.Path)
	}
	return nil
}

func excerptOf(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
