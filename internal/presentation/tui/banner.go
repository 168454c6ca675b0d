package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`               _        _            `, "#38bdf8"},
	{`    __ _ _ __ | |_ ___ (_)_ __   ___ `, "#22d3ee"},
	{`   / _' | '_ \| __/ _ \| | '_ \ / _ \`, "#2dd4bf"},
	{`  | (_| | | | | || (_) | | | | |  __/`, "#34d399"},
	{`   \__,_|_| |_|\__\___/|_|_| |_|\___|`, "#a3e635"},
}

// PrintBanner writes the ASCII art banner, colored when w's profile allows.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
