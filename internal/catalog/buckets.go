package catalog

// PriceBucket is a fixed recommended-price facet. Each key maps to a
// half-open interval, except no_price which selects null prices.
type PriceBucket string

const (
	BucketUnder25  PriceBucket = "under_25"
	Bucket25To50   PriceBucket = "from_25_to_50"
	Bucket50To100  PriceBucket = "from_50_to_100"
	Bucket100To200 PriceBucket = "from_100_to_200"
	BucketOver200  PriceBucket = "over_200"
	BucketNoPrice  PriceBucket = "no_price"
)

// ParsePriceBuckets keeps the known bucket keys from a raw list, dropping
// anything else.
func ParsePriceBuckets(values []string) []PriceBucket {
	var out []PriceBucket
	for _, v := range values {
		switch b := PriceBucket(v); b {
		case BucketUnder25, Bucket25To50, Bucket50To100, Bucket100To200, BucketOver200, BucketNoPrice:
			out = append(out, b)
		}
	}
	return out
}

// Matches reports whether a recommended price falls in the bucket.
func (b PriceBucket) Matches(price *float64) bool {
	if b == BucketNoPrice {
		return price == nil
	}
	if price == nil {
		return false
	}
	p := *price
	switch b {
	case BucketUnder25:
		return p < 25
	case Bucket25To50:
		return p >= 25 && p < 50
	case Bucket50To100:
		return p >= 50 && p < 100
	case Bucket100To200:
		return p >= 100 && p < 200
	case BucketOver200:
		return p >= 200
	}
	return false
}

// BucketsMatch evaluates the facet disjunction. An empty selection means no
// price filter is active and everything passes.
func BucketsMatch(price *float64, buckets []PriceBucket) bool {
	if len(buckets) == 0 {
		return true
	}
	for _, b := range buckets {
		if b.Matches(price) {
			return true
		}
	}
	return false
}

// BucketKeys echoes the selection back as plain strings for the response.
func BucketKeys(buckets []PriceBucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, string(b))
	}
	return out
}
