package news

// DefaultKeywords flag headlines that plausibly explain abnormal activity.
// Matching is a case-insensitive substring test.
var DefaultKeywords = []string{
	"acquire", "acquisition", "merger", "buyout", "earnings", "beat", "misses", "quarter",
	"q1", "q2", "q3", "q4", "revenue", "guidance", "forecast", "upgrade", "downgrade",
	"FDA", "approval", "contract", "partnership", "deal", "listing", "bankruptcy", "delisting",
	"short", "scandal", "lawsuit", "launch", "supply", "demand", "growth", "loss", "profit",
	"dividend", "split", "insider", "buy", "sell", "CEO", "CFO", "CTO", "resign", "retire",
	"appoint", "appoints", "investigation", "regulation", "fine", "penalty", "settlement",
	"recall", "outbreak", "pandemic", "cyberattack", "hack", "data breach", "ransomware",
	"inflation", "interest rate", "fed", "economy", "GDP", "unemployment", "jobs report",
	"CPI", "PPI", "trade war", "tariff", "sanction", "embargo", "geopolitical", "conflict",
	"war", "crisis", "natural disaster", "earthquake", "hurricane", "flood", "wildfire",
	"drought", "supply chain", "logistics", "shipping", "transportation", "trial", "verdict",
	"court", "compliance", "audit", "whistleblower", "insider trading", "SEC", "FTC", "EPA", "OSHA",
}
