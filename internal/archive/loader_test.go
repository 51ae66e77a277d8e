package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeArchive(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoader_Load_FlattensNestedFields(t *testing.T) {
	path := writeArchive(t, `{"created_at":"2022-08-24T10:00:00Z","text":"hello #go","public_metrics":{"retweet_count":3,"like_count":7},"author":{"username":"ada","verified":true}}`+"\n")

	loader := NewLoader("created_at")
	table, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}

	row := table.Rows[0]
	if got := row["public_metrics.retweet_count"]; got != float64(3) {
		t.Errorf("expected dotted retweet_count 3, got %v", got)
	}
	if got := row["author.username"]; got != "ada" {
		t.Errorf("expected author.username ada, got %v", got)
	}
	if !table.HasColumn("public_metrics.like_count") {
		t.Errorf("expected like_count column, have %v", table.Columns)
	}
}

func TestLoader_Load_ParsesDateColumns(t *testing.T) {
	path := writeArchive(t,
		`{"created_at":"2022-08-24T10:30:00Z","text":"a"}`+"\n"+
			`{"created_at":"Wed Aug 24 10:30:00 +0000 2022","text":"b"}`+"\n")

	table, err := NewLoader("created_at").Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := time.Date(2022, 8, 24, 10, 30, 0, 0, time.UTC)
	for i, row := range table.Rows {
		got, ok := row["created_at"].(time.Time)
		if !ok {
			t.Fatalf("row %d: created_at not parsed, got %T", i, row["created_at"])
		}
		if !got.Equal(want) {
			t.Errorf("row %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestLoader_Load_MalformedLineFailsWithLineNumber(t *testing.T) {
	path := writeArchive(t,
		`{"created_at":"2022-08-24T10:00:00Z","text":"ok"}`+"\n"+
			`{not json`+"\n")

	_, err := NewLoader("created_at").Load(path)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Line != 2 {
		t.Errorf("expected line 2, got %d", parseErr.Line)
	}
}

func TestLoader_Load_BadDateFailsWithParseError(t *testing.T) {
	path := writeArchive(t, `{"created_at":"yesterday","text":"x"}`+"\n")

	_, err := NewLoader("created_at").Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestLoader_Load_EmptyFileYieldsEmptyTable(t *testing.T) {
	path := writeArchive(t, "")

	table, err := NewLoader("created_at").Load(path)
	if err != nil {
		t.Fatalf("expected no error for empty file, got %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(table.Rows))
	}
}

func TestLoader_Load_SkipsBlankLines(t *testing.T) {
	path := writeArchive(t, "\n"+`{"created_at":"2022-08-24T10:00:00Z","text":"x"}`+"\n\n")

	table, err := NewLoader("created_at").Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(table.Rows))
	}
}

func TestLoader_Load_MissingFileFails(t *testing.T) {
	_, err := NewLoader("created_at").Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
