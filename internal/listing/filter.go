package listing

import (
	"strings"
)

// Field names a listing attribute a predicate applies to.
type Field string

const (
	FieldKeyword      Field = "keyword"
	FieldLocation     Field = "location"
	FieldPrice        Field = "price"
	FieldCategoryID   Field = "categoryId"
	FieldCategoryName Field = "categoryName"
)

// Op is the comparison kind of a predicate.
type Op string

const (
	OpContains Op = "contains"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpEq       Op = "eq"
)

// Predicate is one explicit filter condition. A search is the conjunction of
// its predicates; the storage layer decides how to apply them.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}

// Filter holds the optional search inputs. Zero values mean "no constraint".
type Filter struct {
	Keyword      string
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	CategoryID   *int
	CategoryName string
}

// Predicates converts the filter into its predicate list. Absent filters
// contribute nothing, so an empty filter yields an unconstrained search.
func (f Filter) Predicates() []Predicate {
	ps := make([]Predicate, 0, 6)
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		ps = append(ps, Predicate{Field: FieldKeyword, Op: OpContains, Value: kw})
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		ps = append(ps, Predicate{Field: FieldLocation, Op: OpContains, Value: loc})
	}
	if f.MinPrice != nil {
		ps = append(ps, Predicate{Field: FieldPrice, Op: OpGte, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		ps = append(ps, Predicate{Field: FieldPrice, Op: OpLte, Value: *f.MaxPrice})
	}
	if f.CategoryID != nil {
		ps = append(ps, Predicate{Field: FieldCategoryID, Op: OpEq, Value: *f.CategoryID})
	}
	if f.CategoryName != "" {
		ps = append(ps, Predicate{Field: FieldCategoryName, Op: OpEq, Value: f.CategoryName})
	}
	return ps
}

// Matches reports whether the listing satisfies a single predicate.
// categoryName is the name of the listing's category, needed for the
// category-name equality used by public browsing. Substring comparisons are
// case-folded on both sides; price bounds are inclusive; the keyword matches
// against title OR description.
func (p Predicate) Matches(l Listing, categoryName string) bool {
	switch p.Field {
	case FieldKeyword:
		kw := strings.ToLower(p.Value.(string))
		return strings.Contains(strings.ToLower(l.Title), kw) ||
			strings.Contains(strings.ToLower(l.Description), kw)
	case FieldLocation:
		return strings.Contains(strings.ToLower(l.Location), strings.ToLower(p.Value.(string)))
	case FieldPrice:
		v := p.Value.(float64)
		if p.Op == OpGte {
			return l.Price >= v
		}
		return l.Price <= v
	case FieldCategoryID:
		return l.CategoryID == p.Value.(int)
	case FieldCategoryName:
		return categoryName == p.Value.(string)
	}
	return false
}

// MatchesAll is the conjunction over all predicates.
func MatchesAll(l Listing, ps []Predicate, categoryName string) bool {
	for _, p := range ps {
		if !p.Matches(l, categoryName) {
			return false
		}
	}
	return true
}

const defaultPageSize = 10

// DefaultSortField is the sort applied when the caller names none.
const DefaultSortField = "createdAt"

// PageRequest carries 0-based page index, page size and sort. Unknown sort
// fields fall back to creation time; direction defaults to descending.
type PageRequest struct {
	Page     int
	Size     int
	SortBy   string
	SortDesc bool
}

func NewPageRequest(page, size int, sortBy, direction string) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if sortBy == "" {
		sortBy = DefaultSortField
	}
	desc := !strings.EqualFold(direction, "asc")
	return PageRequest{Page: page, Size: size, SortBy: sortBy, SortDesc: desc}
}

func (pr PageRequest) Offset() int {
	return pr.Page * pr.Size
}
