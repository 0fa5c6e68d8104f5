package customer

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Customer struct {
	ID        string
	Name      string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

// Fold lowercases s with Turkish casing rules, so "İ" folds to "i" and "I" to "ı".
func Fold(s string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(s))
}

// Matches is the fuzzy customer search: a case-insensitive substring test over
// name and phone. An empty query matches everyone.
func Matches(c Customer, query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	return strings.Contains(Fold(c.Name+" "+c.Phone), q)
}

func Filter(customers []Customer, query string) []Customer {
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if Matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func NameIndex(customers []Customer) map[string]string {
	idx := make(map[string]string, len(customers))
	for _, c := range customers {
		idx[c.ID] = c.Name
	}
	return idx
}
