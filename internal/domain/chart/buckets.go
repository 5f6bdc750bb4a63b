package chart

// bucketTable defines fixed, ascending, half-open distribution buckets.
// bounds[i] is the inclusive lower bound of bucket i; the exclusive upper
// bound is bounds[i+1], and the last bucket is unbounded above.
type bucketTable struct {
	bounds []float64
	labels []string
}

// index returns the single bucket a value falls in.
func (t bucketTable) index(v float64) int {
	for i := len(t.bounds) - 1; i > 0; i-- {
		if v >= t.bounds[i] {
			return i
		}
	}
	return 0
}

var scoreBuckets = bucketTable{
	bounds: []float64{0, 1_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000},
	labels: []string{"0-1K", "1K-5K", "5K-10K", "10K-50K", "50K-100K", "100K-500K", "500K-1M", "1M+"},
}

var chestBuckets = bucketTable{
	bounds: []float64{0, 50, 100, 250, 500, 1_000},
	labels: []string{"0-50", "50-100", "100-250", "250-500", "500-1K", "1K+"},
}

var ratioBuckets = bucketTable{
	bounds: []float64{0, 5, 10, 25, 50, 100},
	labels: []string{"0-5", "5-10", "10-25", "25-50", "50-100", "100+"},
}
