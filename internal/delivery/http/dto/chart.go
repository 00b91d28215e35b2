package dto

import "github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"

// ChartSeries is the labels/values pair consumed by line and bar charts.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type TrendsResponse struct {
	Daily   ChartSeries `json:"daily"`
	Monthly ChartSeries `json:"monthly"`
}

func SeriesFromBuckets(buckets []analytics.Bucket) ChartSeries {
	s := ChartSeries{Labels: make([]string, len(buckets)), Values: make([]int, len(buckets))}
	for i, b := range buckets {
		s.Labels[i] = b.Label
		s.Values[i] = b.Count
	}
	return s
}
