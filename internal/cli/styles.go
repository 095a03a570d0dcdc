package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/studyplan/internal/ui"
)

// ------- minimal output helpers (Lip Gloss) -------

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, ui.Current().Success.Render("✔ "+msg))
}

func fail(w io.Writer, msg string) {
	fmt.Fprintln(w, ui.Current().Error.Render("✖ "+msg))
}

func warn(w io.Writer, msg string) {
	fmt.Fprintln(w, ui.Current().Pending.Render("• "+msg))
}

func panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, ui.Panel(strings.Join(lines, "\n")))
}
