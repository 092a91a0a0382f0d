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
	{" _       _                       _ ", "#818cf8"},
	{"| | __ _| |___      _____  _ __ __| |", "#a78bfa"},
	{"| |/ _` | __\\ \\ /\\ / / _ \\| '__/ _` |", "#c084fc"},
	{"| | (_| | |_ \\ V  V / (_) | | | (_| |", "#e879f9"},
	{"|_|\\__,_|\\__| \\_/\\_/ \\___/|_|  \\__,_|", "#f472b6"},
}

// PrintBanner writes the ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  character lattices to word lattices, v"+version).Faint())
	fmt.Fprintln(w)
}

// Status writes a one-line coloured status message.
func Status(w io.Writer, ok bool, msg string) {
	out := termenv.NewOutput(w)
	mark, color := "✔", "#22c55e"
	if !ok {
		mark, color = "✘", "#ef4444"
	}
	fmt.Fprintf(w, "%s %s\n", out.String(mark).Foreground(out.Color(color)).Bold(), msg)
}
