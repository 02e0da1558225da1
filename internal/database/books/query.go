package books

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"
)

// SortOrder is the closed set of orderings the book list supports. The string
// values double as the form values of the sort selector.
type SortOrder string

const (
	SortTitleAsc   SortOrder = "titel_asc"
	SortTitleDesc  SortOrder = "titel_desc"
	SortDateNewest SortOrder = "datum_nieuwste"
	SortDateOldest SortOrder = "datum_oudste"
)

// DefaultSortOrder is used for the unfiltered list and for unknown keys.
const DefaultSortOrder = SortTitleAsc

var sortOrders = []SortOrder{SortTitleAsc, SortTitleDesc, SortDateNewest, SortDateOldest}

// ParseSortOrder maps a submitted sort key onto a SortOrder, falling back to
// DefaultSortOrder for anything it does not recognise.
func ParseSortOrder(key string) SortOrder {
	order := SortOrder(key)
	if lo.Contains(sortOrders, order) {
		return order
	}
	return DefaultSortOrder
}

// orderBy returns the ORDER BY terms for the sort order. Ties are broken on
// the book id so results are deterministic.
func (s SortOrder) orderBy() []string {
	switch s {
	case SortTitleDesc:
		return []string{"boek.titel DESC", "boek.id ASC"}
	case SortDateNewest:
		return []string{"review.datum_review DESC", "boek.id ASC"}
	case SortDateOldest:
		return []string{"review.datum_review ASC", "boek.id ASC"}
	default:
		return []string{"boek.titel ASC", "boek.id ASC"}
	}
}

// SortOption describes a sort order for the UI selector.
type SortOption struct {
	Key   SortOrder
	Label string
}

func SortOptions() []SortOption {
	return []SortOption{
		{Key: SortTitleAsc, Label: "Title (A-Z)"},
		{Key: SortTitleDesc, Label: "Title (Z-A)"},
		{Key: SortDateNewest, Label: "Review date (newest first)"},
		{Key: SortDateOldest, Label: "Review date (oldest first)"},
	}
}

// bookRowsQuery selects the book/author/review projection. Column aliases
// match the field names of entities.BookRow.
func bookRowsQuery() sq.SelectBuilder {
	return sq.Select(
		"boek.id AS book_id",
		"boek.titel AS title",
		"auteur.voornaam AS first_name",
		"auteur.achternaam AS last_name",
		"review.reviewtekst AS review_text",
		"review.datum_review AS review_date",
	).
		From("boek").
		Join("boek_auteur ON boek.id = boek_auteur.boek_id").
		Join("auteur ON boek_auteur.auteur_id = auteur.id").
		LeftJoin("review ON boek.id = review.boek_id")
}

func listQuery() sq.SelectBuilder {
	return bookRowsQuery().OrderBy(DefaultSortOrder.orderBy()...)
}

// searchQuery matches the term case-insensitively against the title and both
// author name columns. An empty term matches every row.
func searchQuery(term string, order SortOrder) sq.SelectBuilder {
	pattern := "%" + strings.ToLower(term) + "%"
	return bookRowsQuery().
		Where(sq.Or{
			sq.Expr("LOWER(boek.titel) LIKE ?", pattern),
			sq.Expr("LOWER(auteur.voornaam) LIKE ?", pattern),
			sq.Expr("LOWER(auteur.achternaam) LIKE ?", pattern),
		}).
		OrderBy(order.orderBy()...)
}

func getQuery(id uint) sq.SelectBuilder {
	return bookRowsQuery().
		Where(sq.Eq{"boek.id": id}).
		OrderBy("review.id ASC").
		Limit(1)
}
