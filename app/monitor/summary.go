package monitor

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Summary renders a short human-readable digest of one run, with
// grouped VND amounts, for the run log.
func Summary(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d drops, %d increases, %d new",
		len(report.PriceDrops), len(report.PriceIncreases), len(report.NewProducts))
	if report.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped (no price)", report.Skipped)
	}

	for _, drop := range report.PriceDrops {
		b.WriteString(printer.Sprintf("\n  drop: %s at %s %d₫ -> %d₫ (%.2f%%)",
			drop.Model, drop.Shop, drop.OldPrice, drop.NewPrice, drop.ChangePct))
	}

	return b.String()
}
