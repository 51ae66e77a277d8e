package hashtag

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/akarpov/tweetlens/internal/model"
)

// Aggregated column name produced by gota for the summed weights.
const sumColumn = "total_count_SUM"

// Top groups occurrences by tag, sums total_count per group and
// returns the k heaviest tags in descending order. The sort is stable,
// but the order among tags with equal sums follows the group iteration
// and is not guaranteed. Callers pass the output of DropMissing;
// occurrences with Valid=false are not filtered here.
func Top(occs []model.Occurrence, k int) ([]model.TagCount, error) {
	if len(occs) == 0 || k <= 0 {
		return []model.TagCount{}, nil
	}

	tags := make([]string, len(occs))
	totals := make([]int, len(occs))
	for i, o := range occs {
		tags[i] = o.Tag
		totals[i] = o.TotalCount
	}

	df := dataframe.New(
		series.New(tags, series.String, "hashtag"),
		series.New(totals, series.Int, "total_count"),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("build occurrence frame: %w", df.Error())
	}

	groups := df.GroupBy("hashtag")
	if groups.Err != nil {
		return nil, fmt.Errorf("group by hashtag: %w", groups.Err)
	}

	agg := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_SUM},
		[]string{"total_count"},
	)
	if agg.Error() != nil {
		return nil, fmt.Errorf("sum per hashtag: %w", agg.Error())
	}

	agg = agg.Arrange(dataframe.RevSort(sumColumn))
	if agg.Error() != nil {
		return nil, fmt.Errorf("sort hashtag totals: %w", agg.Error())
	}

	names := agg.Col("hashtag").Records()
	sums := agg.Col(sumColumn).Float()

	if k > len(names) {
		k = len(names)
	}
	out := make([]model.TagCount, k)
	for i := 0; i < k; i++ {
		out[i] = model.TagCount{Tag: names[i], Total: int(sums[i])}
	}
	return out, nil
}
