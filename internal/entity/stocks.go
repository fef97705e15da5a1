package entity

import "strings"

var tickerAliases = map[string]string{
	"TSLA":  "Tesla",
	"AAPL":  "Apple",
	"GME":   "GameStop",
	"AMC":   "AMC",
	"NVDA":  "Nvidia",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"GOOG":  "Google",
	"AMZN":  "Amazon",
	"META":  "Meta",
	"NFLX":  "Netflix",
	"AMD":   "AMD",
	"PLTR":  "Palantir",
	"BB":    "BlackBerry",
	"NOK":   "Nokia",
	"SPCE":  "Virgin Galactic",
	"NIO":   "NIO",
	"COIN":  "Coinbase",
}

var selectableStocks = []string{
	"TSLA", "AAPL", "GME", "AMC", "NVDA",
	"MSFT", "GOOGL", "AMZN", "META", "NFLX",
	"AMD", "PLTR", "BB", "NOK", "NIO", "COIN",
}

var selectableSubreddits = []string{
	"wallstreetbets", "stocks", "investing",
	"StockMarket", "options", "pennystocks",
	"Daytrading", "SecurityAnalysis",
}

// CompanyName returns the company name for an upper-case ticker.
func CompanyName(ticker string) (string, bool) {
	name, ok := tickerAliases[ticker]
	return name, ok
}

// TickerForCompany returns a ticker whose company name matches name case-insensitively.
// When several tickers share a name (GOOG, GOOGL) which one is returned is unspecified.
func TickerForCompany(name string) (string, bool) {
	for ticker, company := range tickerAliases {
		if strings.EqualFold(company, name) {
			return ticker, true
		}
	}
	return "", false
}

// Stocks returns the tickers offered on the selection page.
func Stocks() []string {
	return append([]string(nil), selectableStocks...)
}

// Subreddits returns the subreddits offered on the selection page.
func Subreddits() []string {
	return append([]string(nil), selectableSubreddits...)
}
