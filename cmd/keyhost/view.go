package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ferrum-editor/ferrum/internal/command"
	"github.com/ferrum-editor/ferrum/internal/input/key"
)

var (
	styleDefault  = tcell.StyleDefault
	styleBar      = tcell.StyleDefault.Reverse(true)
	styleFocused  = tcell.StyleDefault.Underline(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Dim(true)
)

// drawText draws s at (x, y), clipped to width cells, and returns the
// number of cells used.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > width {
			break
		}
		screen.SetContent(x+used, y, r, nil, style)
		used += w
	}
	return used
}

func fill(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// draw renders v onto screen.
func draw(screen tcell.Screen, v view, groups []command.Category, shortcut func(string) (string, bool)) {
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height < 4 {
		screen.Show()
		return
	}

	fill(screen, 0, 0, width, styleBar)
	drawText(screen, 1, 0, width-2, fmt.Sprintf("keyhost  [%s]  F1 shortcuts  F2 palette", v.platform), styleBar)

	searchStyle := styleDefault
	if v.focus == searchTarget {
		searchStyle = styleFocused
	}
	n := drawText(screen, 1, 1, width-2, "Search: ", styleDim)
	fill(screen, 1+n, 1, width-2-n, searchStyle)
	drawText(screen, 1+n, 1, width-2-n, v.search, searchStyle)

	drawEditor(screen, 1, 3, width-2, height-5, v.editor, v.focus == editorTarget)

	fill(screen, 0, height-1, width, styleBar)
	status := v.status
	if status == "" {
		status = fmt.Sprintf("%d chars", charCount(v.editor))
	}
	drawText(screen, 1, height-1, width-2, status, styleBar)

	switch {
	case v.palette != nil:
		drawPalette(screen, width, v.palette)
	case v.help:
		drawHelp(screen, width, height, groups, shortcut)
	}
	screen.Show()
}

func drawEditor(screen tcell.Screen, x, y, width, height int, text string, focused bool) {
	lines := strings.Split(text, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for i, line := range lines {
		drawText(screen, x, y+i, width, line, styleDefault)
	}
	if focused && len(lines) > 0 {
		last := len(lines) - 1
		cx := x + runewidth.StringWidth(lines[last])
		screen.ShowCursor(min(cx, x+width-1), y+last)
	}
}

// drawPalette draws the palette box below the title bar: the query line,
// then one row per result with its shortcut right-aligned.
func drawPalette(screen tcell.Screen, width int, p *paletteView) {
	boxW := min(width-4, 72)
	x := (width - boxW) / 2
	y := 2

	fill(screen, x, y, boxW, styleFocused)
	n := drawText(screen, x+1, y, boxW-2, "> ", styleFocused)
	drawText(screen, x+1+n, y, boxW-2-n, p.query, styleFocused)
	screen.ShowCursor(x+1+n+runewidth.StringWidth(p.query), y)

	if len(p.rows) == 0 {
		fill(screen, x, y+1, boxW, styleDefault)
		drawText(screen, x+1, y+1, boxW-2, "No matching commands", styleDim)
		return
	}

	for i, row := range p.rows {
		style := styleDefault
		if i == p.selected {
			style = styleSelected
		}
		fill(screen, x, y+1+i, boxW, style)
		drawText(screen, x+1, y+1+i, boxW-2, paletteLine(row, boxW-2), style)
	}
}

// paletteLine lays out a palette row in width cells, truncating the label
// so the shortcut always fits.
func paletteLine(row paletteRow, width int) string {
	sw := runewidth.StringWidth(row.shortcut)
	if sw == 0 {
		return runewidth.Truncate(row.label, width, "…")
	}
	labelW := width - sw - 1
	if labelW < 1 {
		return runewidth.Truncate(row.shortcut, width, "")
	}
	label := runewidth.Truncate(row.label, labelW, "…")
	return runewidth.FillRight(label, labelW) + " " + row.shortcut
}

func drawHelp(screen tcell.Screen, width, height int, groups []command.Category, shortcut func(string) (string, bool)) {
	boxW := min(width-4, 60)
	x := (width - boxW) / 2
	y := 3
	bottom := height - 2

	for _, g := range groups {
		if y >= bottom {
			return
		}
		fill(screen, x, y, boxW, styleBar)
		drawText(screen, x+1, y, boxW-2, g.Name, styleBar)
		y++
		for _, cmd := range g.Commands {
			if y >= bottom {
				return
			}
			sc, _ := shortcut(cmd.ID)
			fill(screen, x, y, boxW, styleDefault)
			drawText(screen, x+1, y, boxW-2, paletteLine(paletteRow{label: cmd.DisplayTitle(), shortcut: sc}, boxW-2), styleDefault)
			y++
		}
	}
}

// listing renders the commands table printed by the keys subcommand.
func listing(groups []command.Category, shortcut func(string) (string, bool), p key.Platform) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shortcuts for platform %s\n", p)
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s\n", g.Name)
		for _, cmd := range g.Commands {
			sc, ok := shortcut(cmd.ID)
			if !ok {
				sc = "-"
			}
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				runewidth.FillRight(sc, 14),
				runewidth.FillRight(cmd.ID, 16),
				cmd.DisplayTitle())
		}
	}
	return b.String()
}
