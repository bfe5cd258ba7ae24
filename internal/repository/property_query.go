package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stevenls811118/LightBnB/internal/model"
	"github.com/stevenls811118/LightBnB/internal/validation"
)

const (
	// DefaultLimit applies when a caller passes a zero limit.
	DefaultLimit = 10
	// MaxLimit caps a single page of results.
	MaxLimit = 100
	// MaxRating is the top of the review scale.
	MaxRating = 5
)

// Query is a statement template and its positional arguments. Args[i]
// binds to placeholder $i+1.
type Query struct {
	SQL  string
	Args []any
}

// propertyColumns lists the properties table in scan order; see propertyDest.
const propertyColumns = `properties.id, properties.owner_id, properties.title, properties.description,
  properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night,
  properties.parking_spaces, properties.number_of_bathrooms, properties.number_of_bedrooms,
  properties.country, properties.street, properties.city, properties.province,
  properties.post_code, properties.active`

// queryBuilder appends SQL fragments and numbers placeholders in the
// order their values are bound.
type queryBuilder struct {
	sql        strings.Builder
	args       []any
	conditions int
}

// bind appends v to the argument list and returns its placeholder.
func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *queryBuilder) line(fragment string) {
	b.sql.WriteString(fragment)
	b.sql.WriteByte('\n')
}

// where appends a filter condition. The keyword depends only on how many
// conditions were appended before it: the first is WHERE, the rest AND.
func (b *queryBuilder) where(format string, v any) {
	keyword := "AND"
	if b.conditions == 0 {
		keyword = "WHERE"
	}
	b.conditions++
	b.line(keyword + " " + fmt.Sprintf(format, b.bind(v)))
}

// clause appends a fragment with a single bound value.
func (b *queryBuilder) clause(format string, v any) {
	b.line(fmt.Sprintf(format, b.bind(v)))
}

func (b *queryBuilder) build() Query {
	return Query{SQL: b.sql.String(), Args: b.args}
}

// BuildPropertySearch assembles the property search statement.
//
// Filters are evaluated in a fixed order (city, owner, minimum price,
// maximum price) and each one present binds its value before its
// condition is written, so placeholder numbers follow append order.
// Rating filters on the aggregate and therefore goes in HAVING after
// GROUP BY. The limit is always the last argument. A zero limit means
// DefaultLimit.
//
// Invalid filter values return validation.CustomValidationErrors; no
// statement is produced for them.
func BuildPropertySearch(filter model.PropertyFilter, limit int) (Query, error) {
	if err := validatePropertySearch(filter, limit); err != nil {
		return Query{}, err
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	b := &queryBuilder{}
	b.line("SELECT " + propertyColumns + ",\n  avg(property_reviews.rating) AS average_rating")
	b.line("FROM properties")
	b.line("JOIN property_reviews ON properties.id = property_reviews.property_id")

	if city := normalizeCity(filter.City); city != "" {
		b.where("properties.city LIKE %s", "%"+escapeLike(city)+"%")
	}

	if filter.OwnerID != nil {
		b.where("properties.owner_id = %s", *filter.OwnerID)
	}

	if filter.MinimumPricePerNight != nil {
		b.where("properties.cost_per_night >= %s", model.ToMinorUnits(*filter.MinimumPricePerNight))
	}

	if filter.MaximumPricePerNight != nil {
		b.where("properties.cost_per_night <= %s", model.ToMinorUnits(*filter.MaximumPricePerNight))
	}

	b.line("GROUP BY properties.id")

	if filter.MinimumRating != nil {
		b.clause("HAVING avg(property_reviews.rating) >= %s", *filter.MinimumRating)
	}

	b.line("ORDER BY properties.cost_per_night")
	b.clause("LIMIT %s;", limit)

	return b.build(), nil
}

// normalizeCity trims whitespace and a single leading '#', which the
// search form prefixes to the city value.
func normalizeCity(city string) string {
	city = strings.TrimSpace(city)
	city = strings.TrimPrefix(city, "#")
	return strings.TrimSpace(city)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func validatePropertySearch(filter model.PropertyFilter, limit int) error {
	var problems validation.CustomValidationErrors

	if problem, ok := limitProblem(limit); !ok {
		problems = append(problems, problem)
	}

	if filter.OwnerID != nil && *filter.OwnerID <= 0 {
		problems = append(problems, validation.CustomValidationError{Field: "owner_id", Message: "must be a positive number"})
	}

	minValid := checkAmount(&problems, "minimum_price_per_night", filter.MinimumPricePerNight, model.MaxPricePerNight)
	maxValid := checkAmount(&problems, "maximum_price_per_night", filter.MaximumPricePerNight, model.MaxPricePerNight)
	if minValid && maxValid && filter.MinimumPricePerNight != nil && filter.MaximumPricePerNight != nil &&
		*filter.MinimumPricePerNight > *filter.MaximumPricePerNight {
		problems = append(problems, validation.CustomValidationError{
			Field:   "maximum_price_per_night",
			Message: "must not be less than minimum_price_per_night",
		})
	}

	checkAmount(&problems, "minimum_rating", filter.MinimumRating, MaxRating)

	if len(problems) > 0 {
		return problems
	}
	return nil
}

// limitProblem reports whether limit is zero (default) or within 1..MaxLimit.
func limitProblem(limit int) (validation.CustomValidationError, bool) {
	switch {
	case limit < 0:
		return validation.CustomValidationError{Field: "limit", Message: "must be a positive number"}, false
	case limit > MaxLimit:
		return validation.CustomValidationError{Field: "limit", Message: fmt.Sprintf("must not exceed %d", MaxLimit)}, false
	default:
		return validation.CustomValidationError{}, true
	}
}

// validateNewProperty bounds the nightly cost before it is converted to
// cents, so an out-of-range amount fails as a field error and never
// reaches the driver.
func validateNewProperty(p model.NewProperty) error {
	var problems validation.CustomValidationErrors
	cost := p.CostPerNight
	checkAmount(&problems, "cost_per_night", &cost, model.MaxPricePerNight)
	if len(problems) > 0 {
		return problems
	}
	return nil
}

func validateLimit(limit int) error {
	if problem, ok := limitProblem(limit); !ok {
		return validation.CustomValidationErrors{problem}
	}
	return nil
}

// checkAmount records a problem when v is set but not a finite number in
// [0, upper]. It reports whether v is usable.
func checkAmount(problems *validation.CustomValidationErrors, field string, v *float64, upper float64) bool {
	if v == nil {
		return true
	}

	switch {
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		*problems = append(*problems, validation.CustomValidationError{Field: field, Message: "must be a number"})
	case *v < 0:
		*problems = append(*problems, validation.CustomValidationError{Field: field, Message: "must not be negative"})
	case *v > upper:
		*problems = append(*problems, validation.CustomValidationError{Field: field, Message: "must not exceed " + strconv.FormatFloat(upper, 'f', -1, 64)})
	default:
		return true
	}
	return false
}
