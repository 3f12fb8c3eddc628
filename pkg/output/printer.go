package output

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/logging"
)

// Printer writes styled text to a writer.
type Printer struct {
	w      io.Writer
	color  bool
	styles map[string]lipgloss.Style
}

// NewPrinter creates a printer for w. FormatAuto detects the format when w
// is a file and falls back to plain text otherwise.
func NewPrinter(w io.Writer, format Format) (*Printer, error) {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	renderer := lipgloss.NewRenderer(w)
	color := format == FormatTerminal
	if color && renderer.ColorProfile() == termenv.Ascii {
		renderer.SetColorProfile(termenv.ANSI256)
	}

	styles, err := LoadStyles(defaultStyles, renderer)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", format.String()).
		Msg("Printer created")

	return &Printer{w: w, color: color, styles: styles}, nil
}

// Color reports whether the printer emits styled output.
func (p *Printer) Color() bool {
	return p.color
}

// Style renders text with the named style. Plain printers and unknown
// names return text unchanged.
func (p *Printer) Style(name, text string) string {
	if !p.color {
		return text
	}
	style, ok := p.styles[name]
	if !ok {
		return text
	}
	return style.Render(text)
}

// Success renders text with the Success style.
func (p *Printer) Success(text string) string { return p.Style(StyleSuccess, text) }

// Error renders text with the Error style.
func (p *Printer) Error(text string) string { return p.Style(StyleError, text) }

// Key renders text with the Key style.
func (p *Printer) Key(text string) string { return p.Style(StyleKey, text) }

// Muted renders text with the Muted style.
func (p *Printer) Muted(text string) string { return p.Style(StyleMuted, text) }

// Type renders text with the Type style.
func (p *Printer) Type(text string) string { return p.Style(StyleType, text) }

// Println writes a line.
func (p *Printer) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(p.w, a...)
}

// Printf writes formatted text.
func (p *Printer) Printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(p.w, format, a...)
}

// Field writes a "key: value" line with the key styled.
func (p *Printer) Field(key string, value interface{}) {
	p.Printf("%s: %v\n", p.Key(key), value)
}

// PrintError writes err with its error code highlighted.
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	code := errors.GetErrorCode(err)
	p.Printf("%s %s\n", p.Error("error["+string(code)+"]"), errorMessage(err))
}

func errorMessage(err error) string {
	var hermesErr *errors.HermesError
	if stderrors.As(err, &hermesErr) {
		if hermesErr.Wrapped != nil {
			return hermesErr.Message + ": " + hermesErr.Wrapped.Error()
		}
		return hermesErr.Message
	}
	return err.Error()
}

// RenderMarkdown renders markdown through glamour on color printers and
// returns it unchanged otherwise.
func (p *Printer) RenderMarkdown(markdown string) string {
	if !p.color {
		return markdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
