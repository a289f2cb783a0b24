package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TrendSniper/internal/model"
	"TrendSniper/internal/session"
)

// maxLinkedHeadlines bounds how many headlines each alert shows.
const maxLinkedHeadlines = 3

// DefaultFooter describes the filters at the default price ceiling.
var DefaultFooter = Footer(10)

// Footer returns the filter summary appended to every alert.
func Footer(priceCeiling float64) string {
	return fmt.Sprintf("Filters: Price < $%g · Above VWAP · MA20 > MA50 · Volume spike", priceCeiling)
}

// FormatIdeaHTML renders one trade idea as a Telegram HTML message.
func FormatIdeaHTML(idea model.TradeIdea, footer string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎯 <b>TrendSniper Alert - %s</b>\n", html.EscapeString(idea.Ticker)))
	b.WriteString(fmt.Sprintf("Price: $%.4f\n\n", idea.Price))

	b.WriteString(fmt.Sprintf("Entry: <b>$%.4f</b>\n", idea.Entry))
	b.WriteString(fmt.Sprintf("Stop: $%.4f\n", idea.Stop))
	b.WriteString(fmt.Sprintf("Take: $%.4f\n", idea.Take))
	b.WriteString(fmt.Sprintf("Shares: %d\n\n", idea.Shares))

	b.WriteString(fmt.Sprintf("VWAP: $%.4f\n", idea.VWAP))
	b.WriteString(fmt.Sprintf("MA20 / MA50: $%.4f / %.4f\n", idea.MA20, idea.MA50))
	b.WriteString(fmt.Sprintf("Volume (last/avg): %d / %d\n", idea.LastVolume, idea.AvgVolume))

	if idea.HasCatalyst {
		b.WriteString("\n📰 <b>Catalyst:</b> Yes - relevant news found\n")
	} else if len(idea.Headlines) > 0 {
		b.WriteString(fmt.Sprintf("\n📰 News: %d recent headlines\n", len(idea.Headlines)))
	}
	for i, h := range idea.Headlines {
		if i >= maxLinkedHeadlines {
			break
		}
		title := html.EscapeString(h.Text)
		if h.URL != "" {
			b.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a>\n", html.EscapeString(h.URL), title))
		} else {
			b.WriteString(fmt.Sprintf("• %s\n", title))
		}
	}

	if footer != "" {
		b.WriteString(fmt.Sprintf("\n<i>%s</i>", html.EscapeString(footer)))
	}
	return b.String()
}

// FormatStatus renders the session status for a command reply.
func FormatStatus(st session.Status) string {
	scanning := "OFF"
	if st.Enabled {
		scanning = "ON"
	}
	window := "Outside Market Hours"
	if st.InMarketWindow {
		window = "Market Window"
	}

	var b strings.Builder
	b.WriteString("📦 <b>TrendSniper status</b>\n\n")
	b.WriteString(fmt.Sprintf("Scanning: <b>%s</b>\n", scanning))
	b.WriteString(fmt.Sprintf("Window: <b>%s</b>\n", window))
	b.WriteString(fmt.Sprintf("Posted tickers (session): <b>%d</b>\n", st.SessionPostedCount))
	b.WriteString(fmt.Sprintf("Universe size: <b>%d</b>\n", st.UniverseSize))
	b.WriteString(fmt.Sprintf("Time: %s", st.Time.Format(time.RFC3339)))
	return b.String()
}
