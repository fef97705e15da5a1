package service

import (
	"strings"

	"reddit-stock-sentiment/internal/entity"
)

// ExpandQuery returns query followed by its ticker/company alias, if one is known.
func ExpandQuery(query string) []string {
	terms := []string{query}

	if name, ok := entity.CompanyName(strings.ToUpper(query)); ok {
		return append(terms, name)
	}
	if ticker, ok := entity.TickerForCompany(query); ok {
		return append(terms, ticker)
	}
	return terms
}
