package service

import (
	"fmt"
	"sort"
	"strings"

	"surveykit/internal/model"
)

// RespondentOrder selects how the per-respondent series is ordered
type RespondentOrder string

const (
	OrderAsReturned RespondentOrder = "as-returned"
	OrderByName     RespondentOrder = "name"
	OrderByScore    RespondentOrder = "score"
)

// ParseRespondentOrder accepts the config and query spellings
func ParseRespondentOrder(s string) (RespondentOrder, error) {
	switch RespondentOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderAsReturned, "none":
		return OrderAsReturned, nil
	case OrderByName:
		return OrderByName, nil
	case OrderByScore:
		return OrderByScore, nil
	}
	return "", fmt.Errorf("%w: unknown respondent order %q", model.ErrValidation, s)
}

// ToSeries converts one aggregate into "Rating n" points, ascending by value
func ToSeries(agg model.RatingQuestionAggregate) []model.SeriesPoint {
	values := ratingValues(agg)
	out := make([]model.SeriesPoint, 0, len(values))
	for _, v := range values {
		out = append(out, model.SeriesPoint{
			Label: ratingLabel(v),
			Value: agg.Ratings[v],
		})
	}
	return out
}

// ToPieSeries adds per-slice colors to the series of one aggregate
func ToPieSeries(agg model.RatingQuestionAggregate) model.PieSeries {
	values := ratingValues(agg)
	pie := model.PieSeries{
		Title:  fmt.Sprintf("Ratings for %q", agg.Question),
		Labels: make([]string, 0, len(values)),
		Values: make([]int, 0, len(values)),
		Colors: make([]string, 0, len(values)),
	}
	for _, v := range values {
		pie.Labels = append(pie.Labels, ratingLabel(v))
		pie.Values = append(pie.Values, agg.Ratings[v])
		pie.Colors = append(pie.Colors, RatingColor(v, len(values)))
	}
	return pie
}

var (
	lowRatingColors  = []string{"#660000", "#990000", "#CC0000", "#FF0000"}
	highRatingColors = []string{"#CCFFCC", "#99FF99", "#66FF66", "#33FF33", "#00CC00"}
)

const midRatingColor = "#FF7F00"

// RatingColor shades values red below the scale midpoint, orange at it and
// green above it
func RatingColor(rating, total int) string {
	mid := (total + 1) / 2
	switch {
	case rating < mid:
		return lowRatingColors[clamp(rating-1, len(lowRatingColors))]
	case rating == mid:
		return midRatingColor
	default:
		return highRatingColors[clamp(rating-mid-1, len(highRatingColors))]
	}
}

// ToRespondentSeries maps user totals to chart points in the given order.
// Sorting is stable so equal keys keep the order they were returned in.
func ToRespondentSeries(ratings []model.UserRating, order RespondentOrder) []model.RespondentSeriesPoint {
	out := make([]model.RespondentSeriesPoint, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, model.RespondentSeriesPoint{Name: r.UserName, TotalRating: r.TotalRating})
	}

	switch order {
	case OrderByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case OrderByScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalRating > out[j].TotalRating
		})
	}
	return out
}

func ratingValues(agg model.RatingQuestionAggregate) []int {
	values := make([]int, 0, len(agg.Ratings))
	for v := range agg.Ratings {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func ratingLabel(v int) string {
	return fmt.Sprintf("Rating %d", v)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
