package util

import (
	"fmt"
	"io"
	"math"

	"review-explorer/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var starLabels = []string{"1 star", "2 stars", "3 stars", "4 stars", "5 stars"}

// RatingHistogram counts reviews per star bucket (index 0 is one star).
// Ratings are rounded to the nearest star and clamped to 1..5.
func RatingHistogram(reviews []models.Review) [5]int {
	var buckets [5]int
	for _, r := range reviews {
		if r.Rating <= 0 {
			continue
		}
		star := int(math.Round(r.Rating))
		if star < 1 {
			star = 1
		}
		if star > 5 {
			star = 5
		}
		buckets[star-1]++
	}
	return buckets
}

// PlotRatingHistogram renders an HTML bar chart of a place's review ratings.
func PlotRatingHistogram(w io.Writer, place models.Place) error {
	buckets := RatingHistogram(place.Reviews)

	data := make([]opts.BarData, 0, len(buckets))
	for _, n := range buckets {
		data = append(data, opts.BarData{Value: n})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: place.Name + " ratings",
			Width:     "800px",
			Height:    "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    place.Name,
			Subtitle: fmt.Sprintf("%.1f average over %d reviews", place.Rating, place.TotalReviews()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(starLabels).
		AddSeries("Reviews", data,
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render rating chart: %w", err)
	}
	return nil
}
