package alert

import (
	"fmt"
	"strings"
	"time"
)

// FormatMomentumAlert renders the Markdown body for a momentum spike alert.
func FormatMomentumAlert(c Candidate, at time.Time) string {
	var b strings.Builder

	b.WriteString("*Momentum Alert*\n\n")
	fmt.Fprintf(&b, "*%s*\n", c.Title)
	fmt.Fprintf(&b, "SKU: `%s`\n", c.SKU)
	if c.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", c.Category)
	}
	if c.Price > 0 {
		fmt.Fprintf(&b, "Price: $%.2f\n", c.Price)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Momentum score: *%.1f* (%s confidence)\n", c.MomentumScore, c.Confidence)
	if c.RankCurrent != nil && c.RankPrevious != nil {
		fmt.Fprintf(&b, "Rank: %d → %d\n", *c.RankPrevious, *c.RankCurrent)
	} else if c.RankCurrent != nil {
		fmt.Fprintf(&b, "Rank: %d\n", *c.RankCurrent)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "_%s_", at.Format("2006-01-02 15:04 UTC"))

	return b.String()
}

// FormatTestAlert renders the connectivity-check message.
func FormatTestAlert(at time.Time) string {
	return fmt.Sprintf("*Test Alert*\n\nAlert pipeline is connected.\n\n_%s_",
		at.Format("2006-01-02 15:04 UTC"))
}
