package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/qdm12/netscope/internal/models"
	"github.com/qdm12/netscope/internal/widget"
)

// Text renders the page for a terminal. Colors are only used
// if colored is true.
func Text(page models.Page, colored bool) string {
	errorColor := color.New(color.FgRed, color.Bold)
	titleColor := color.New(color.Bold)
	labelColor := color.New(color.FgCyan)
	if colored {
		errorColor.EnableColor()
		titleColor.EnableColor()
		labelColor.EnableColor()
	} else {
		errorColor.DisableColor()
		titleColor.DisableColor()
		labelColor.DisableColor()
	}

	switch {
	case page.Loading:
		return "Loading...\n"
	case page.State == widget.KindError.String():
		return errorColor.Sprint(page.Message) + "\n"
	case len(page.Panels) == 0:
		return page.Message + "\n"
	}

	lines := []string{titleColor.Sprint(page.Title) + " by " + page.Author}
	for _, panel := range page.Panels {
		marker := "▸"
		if panel.Open {
			marker = "▾"
		}
		lines = append(lines, marker+" "+titleColor.Sprint(panel.Title))
		for _, field := range panel.Fields {
			lines = append(lines, "    "+labelColor.Sprint(field.Label+":")+" "+field.Value)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
