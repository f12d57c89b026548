// Package web holds the embedded HTML templates for the dashboard pages.
package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates with the formatting helpers
// the pages use.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money":    formatMoney,
		"moneyPtr": formatMoneyPtr,
		"pctPtr":   formatPctPtr,
	}).ParseFS(templateFS, "templates/*.html")
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatMoneyPtr renders optional valuation fields; a missing live price
// shows as a dash instead of a number.
func formatMoneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(2)
}

func formatPctPtr(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(2) + "%"
}
