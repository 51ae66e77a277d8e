package timeseries

import (
	"testing"
	"time"

	"github.com/akarpov/tweetlens/internal/model"
)

func tweetOn(day time.Time, total int) model.Tweet {
	return model.Tweet{Date: day, Count: 1, TotalCount: total}
}

func TestResample_DailyGapGetsZeroBucket(t *testing.T) {
	aug24 := time.Date(2022, 8, 24, 9, 0, 0, 0, time.UTC)
	aug26 := time.Date(2022, 8, 26, 23, 0, 0, 0, time.UTC)

	buckets := Resample([]model.Tweet{
		tweetOn(aug24, 4),
		tweetOn(aug26, 2),
		tweetOn(aug24, 1),
	}, Daily)

	if len(buckets) != 3 {
		t.Fatalf("expected 3 daily buckets, got %d", len(buckets))
	}

	want := []struct {
		label string
		total int
	}{
		{"2022-08-24", 5},
		{"2022-08-25", 0},
		{"2022-08-26", 2},
	}
	for i, w := range want {
		if buckets[i].Label != w.label {
			t.Errorf("bucket %d: expected label %s, got %s", i, w.label, buckets[i].Label)
		}
		if buckets[i].Total != w.total {
			t.Errorf("bucket %d (%s): expected total %d, got %d", i, w.label, w.total, buckets[i].Total)
		}
	}
}

func TestResample_MonthlySpansQuietMonths(t *testing.T) {
	buckets := Resample([]model.Tweet{
		tweetOn(time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC), 3),
		tweetOn(time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), 7),
	}, Monthly)

	if len(buckets) != 4 {
		t.Fatalf("expected 4 monthly buckets (Jun-Sep), got %d", len(buckets))
	}
	if buckets[0].Label != "2022-06" || buckets[0].Total != 3 {
		t.Errorf("June bucket wrong: %+v", buckets[0])
	}
	for _, i := range []int{1, 2} {
		if buckets[i].Total != 0 {
			t.Errorf("quiet month %s: expected 0, got %d", buckets[i].Label, buckets[i].Total)
		}
	}
	if buckets[3].Label != "2022-09" || buckets[3].Total != 7 {
		t.Errorf("September bucket wrong: %+v", buckets[3])
	}
}

func TestResample_UnsortedInput(t *testing.T) {
	buckets := Resample([]model.Tweet{
		tweetOn(time.Date(2022, 8, 26, 0, 0, 0, 0, time.UTC), 1),
		tweetOn(time.Date(2022, 8, 24, 0, 0, 0, 0, time.UTC), 1),
	}, Daily)

	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets regardless of input order, got %d", len(buckets))
	}
	if buckets[0].Label != "2022-08-24" {
		t.Errorf("expected range to start at earliest record, got %s", buckets[0].Label)
	}
}

func TestResample_EmptyInput(t *testing.T) {
	if got := Resample(nil, Daily); len(got) != 0 {
		t.Errorf("expected empty series, got %d buckets", len(got))
	}
}

func TestSortByDate_StableChronological(t *testing.T) {
	d := time.Date(2022, 8, 24, 0, 0, 0, 0, time.UTC)
	tweets := []model.Tweet{
		{Date: d.AddDate(0, 0, 1), Username: "late"},
		{Date: d, Username: "first"},
		{Date: d, Username: "second"},
	}

	sorted := SortByDate(tweets)
	wantUsers := []string{"first", "second", "late"}
	for i, w := range wantUsers {
		if sorted[i].Username != w {
			t.Errorf("position %d: expected %s, got %s", i, w, sorted[i].Username)
		}
	}
}

func TestRange(t *testing.T) {
	if Range(nil) != nil {
		t.Error("expected nil range for empty input")
	}

	from := time.Date(2022, 8, 24, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	r := Range([]model.Tweet{{Date: to}, {Date: from}})
	if r == nil || !r.From.Equal(from) || !r.To.Equal(to) {
		t.Errorf("unexpected range: %+v", r)
	}
}
