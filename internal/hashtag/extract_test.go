package hashtag

import (
	"strings"
	"testing"
	"time"

	"github.com/akarpov/tweetlens/internal/model"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"no hashtags", "student debt relief is here", nil},
		{"single", "sign up now #StudentDebtRelief", []string{"StudentDebtRelief"}},
		{"multiple in order", "#CancelStudentDebt today #debtfree", []string{"CancelStudentDebt", "debtfree"}},
		{"trailing punctuation kept", "great news #relief!", []string{"relief!"}},
		{"case preserved", "#Biden and #biden differ", []string{"Biden", "biden"}},
		{"bare hash strips to empty", "what # means", []string{""}},
		{"hash mid-token ignored", "see you#there", nil},
		{"empty text", "", nil},
		{"whitespace only", "   \t\n", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Extract(c.text)
			if len(got) != len(c.want) {
				t.Fatalf("Extract(%q): expected %v, got %v", c.text, c.want, got)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Errorf("Extract(%q)[%d]: expected %q, got %q", c.text, i, c.want[i], got[i])
				}
			}
		})
	}
}

func TestExtract_CountMatchesMarkedTokens(t *testing.T) {
	text := "#a plain #b!! words #c mid#dle # trailing"

	marked := 0
	for _, tok := range strings.Fields(text) {
		if strings.HasPrefix(tok, "#") {
			marked++
		}
	}

	got := Extract(text)
	if len(got) != marked {
		t.Errorf("expected %d hashtags, got %d (%v)", marked, len(got), got)
	}
}

func TestExplode_ReplicatesWeightPerTag(t *testing.T) {
	d := time.Date(2022, 8, 24, 0, 0, 0, 0, time.UTC)
	occs := Explode([]model.Tweet{
		{Date: d, Text: "#a #b", TotalCount: 7},
	})

	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	for i, o := range occs {
		if !o.Valid {
			t.Errorf("occurrence %d: expected valid", i)
		}
		if o.TotalCount != 7 {
			t.Errorf("occurrence %d: weight must not be split, expected 7, got %d", i, o.TotalCount)
		}
		if !o.Date.Equal(d) {
			t.Errorf("occurrence %d: date not inherited", i)
		}
	}
	if occs[0].Tag != "a" || occs[1].Tag != "b" {
		t.Errorf("tags wrong: %+v", occs)
	}
}

func TestExplode_NoHashtagsYieldsMissingRow(t *testing.T) {
	occs := Explode([]model.Tweet{{Text: "nothing here", TotalCount: 3}})

	if len(occs) != 1 {
		t.Fatalf("expected 1 placeholder occurrence, got %d", len(occs))
	}
	if occs[0].Valid {
		t.Error("expected Valid=false for a record with no hashtags")
	}

	if kept := DropMissing(occs); len(kept) != 0 {
		t.Errorf("expected 0 rows after DropMissing, got %d", len(kept))
	}
}

func TestDropMissing_KeepsEmptyButPresentTag(t *testing.T) {
	occs := Explode([]model.Tweet{{Text: "just a # symbol", TotalCount: 1}})

	kept := DropMissing(occs)
	if len(kept) != 1 {
		t.Fatalf("expected the bare-# occurrence to survive, got %d rows", len(kept))
	}
	if kept[0].Tag != "" {
		t.Errorf("expected empty tag, got %q", kept[0].Tag)
	}
}
