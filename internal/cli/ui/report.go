package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/calumari/jinline"
)

// Reporter writes human-readable progress and failure messages. The output is
// meant for people and is not a stable format.
type Reporter struct {
	w       io.Writer
	noColor bool
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	return &Reporter{w: w, noColor: noColor}
}

func (r *Reporter) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	}
	return c
}

// Info prints a neutral progress line.
func (r *Reporter) Info(format string, args ...any) {
	r.color(color.FgCyan).Fprintf(r.w, "🔍 "+format+"\n", args...)
}

// Step prints a line about work being done.
func (r *Reporter) Step(format string, args ...any) {
	r.color(color.FgWhite).Fprintf(r.w, "📝 "+format+"\n", args...)
}

// Success prints a completed step.
func (r *Reporter) Success(format string, args ...any) {
	r.color(color.FgGreen, color.Bold).Fprintf(r.w, "✅ "+format+"\n", args...)
}

// Warn prints a recoverable problem.
func (r *Reporter) Warn(format string, args ...any) {
	r.color(color.FgYellow).Fprintf(r.w, "⚠️  "+format+"\n", args...)
}

// Failure describes a failed step.
type Failure struct {
	// Attempted names what was being done, e.g. "parse script".
	Attempted string
	Reason    string
	// Excerpt, when set, is printed quoted below the reason.
	Excerpt string
	Hints   []string
}

// Fail prints f.
func (r *Reporter) Fail(f Failure) {
	head := r.color(color.FgRed, color.Bold)
	body := r.color(color.FgRed)
	if f.Attempted != "" {
		head.Fprintf(r.w, "❌ %s: %s\n", strings.ToUpper(f.Attempted), f.Reason)
	} else {
		head.Fprintf(r.w, "❌ %s\n", f.Reason)
	}
	if f.Excerpt != "" {
		body.Fprintf(r.w, "   📄 raw text (first %d chars):\n", len([]rune(f.Excerpt)))
		body.Fprintf(r.w, "   %q\n", f.Excerpt)
	}
	hint := r.color(color.FgCyan)
	for _, h := range f.Hints {
		hint.Fprintf(r.w, "   → %s\n", h)
	}
}

// Preview prints up to n runes of text between rulers, with an ellipsis when
// text was cut.
func (r *Reporter) Preview(text string, n int) {
	rule := strings.Repeat("-", 50)
	fmt.Fprintln(r.w, rule)
	runes := []rune(text)
	if len(runes) > n {
		fmt.Fprintln(r.w, string(runes[:n])+"...")
	} else {
		fmt.Fprintln(r.w, text)
	}
	fmt.Fprintln(r.w, rule)
}

// Outcome reports the result of an inline pass. It returns err unchanged when
// it is not one of the reported outcomes, so callers can treat it as fatal.
func (r *Reporter) Outcome(res *jinline.Result, err error) error {
	if err == nil {
		r.Success("found field at %s", res.Path)
		r.Step("inlined %d chars as %s", res.RawLen, jinline.KindOf(res.Value))
		return nil
	}
	var ierr *jinline.Error
	if !errors.As(err, &ierr) {
		return err
	}
	switch ierr.Kind {
	case jinline.KindNotFound:
		r.Fail(Failure{
			Attempted: "find field",
			Reason:    fmt.Sprintf("no string field %q", ierr.Key),
			Hints:     []string{"root keys: " + strings.Join(ierr.RootKeys, ", ")},
		})
		return nil
	case jinline.KindMalformedNestedJSON:
		reason := "not valid json"
		if ierr.Err != nil {
			reason = ierr.Err.Error()
		}
		r.Fail(Failure{
			Attempted: fmt.Sprintf("parse %s", ierr.Path),
			Reason:    reason,
			Excerpt:   ierr.Excerpt,
			Hints:     []string{"the file was left unchanged"},
		})
		return nil
	default:
		return err
	}
}
