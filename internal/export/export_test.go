package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/shramba/internal/model"
)

func ptr(id int64) *int64 { return &id }

func fixtures() ([]model.Item, []model.Location) {
	created := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	purchased := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	locs := []model.Location{
		{ID: 1, Name: "Kitchen", Path: "Kitchen"},
		{ID: 2, Name: "Fridge", ParentID: ptr(1), Path: "Kitchen/Fridge"},
	}
	items := []model.Item{
		{
			ID:           1,
			Name:         `Widget, "Pro"`,
			Description:  "line one\nline two",
			Barcode:      "1234567890123",
			Value:        "5.99",
			PurchaseDate: &purchased,
			LocationID:   ptr(2),
			Notes:        "plain",
			CreatedAt:    created,
		},
		{
			ID:         2,
			Name:       "Orphan",
			LocationID: ptr(99),
			CreatedAt:  created,
		},
	}
	return items, locs
}

func TestCSVEscaping(t *testing.T) {
	items, locs := fixtures()
	var buf bytes.Buffer
	if err := CSV(&buf, items, locs); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Name,Description,Barcode,Value,Purchase Date,Warranty End Date,Location,Notes,Created Date\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, `"Widget, ""Pro"""`) {
		t.Errorf("expected escaped name in output:\n%s", out)
	}
	if !strings.Contains(out, "5.99,2025-12-24,,Kitchen/Fridge,plain,2026-02-14\n") {
		t.Errorf("expected unquoted plain fields and ISO dates in output:\n%s", out)
	}
}

func TestCSVQuoting(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{"plain", "spare key", ",spare key,"},
		{"comma", "left, top", `,"left, top",`},
		{"quote", `the "good" one`, `,"the ""good"" one",`},
		{"newline", "line one\nline two", ",\"line one\nline two\","},
		{"leading space", " indented", `," indented",`},
		{"inner space", "two words", ",two words,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			items := []model.Item{{Name: "x", Notes: tt.notes}}
			if err := CSV(&buf, items, nil); err != nil {
				t.Fatalf("CSV: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	items, locs := fixtures()
	var buf bytes.Buffer
	if err := CSV(&buf, items, locs); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1][0] != `Widget, "Pro"` {
		t.Errorf("name round trip = %q", records[1][0])
	}
	if records[1][1] != "line one\nline two" {
		t.Errorf("description round trip = %q", records[1][1])
	}
	// Deleted location renders as an empty path.
	if records[2][6] != "" {
		t.Errorf("expected empty location for dangling reference, got %q", records[2][6])
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil, nil); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestHTMLReport(t *testing.T) {
	items, locs := fixtures()
	var buf bytes.Buffer
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := HTML(&buf, items, locs, now); err != nil {
		t.Fatalf("HTML: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<strong>Total Items:</strong> 2",
		"<strong>Total Value:</strong> $5.99",
		"<strong>Generated:</strong> 2026-03-01",
		"Widget, &#34;Pro&#34;",
		"Kitchen/Fridge",
		"No location",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report", want)
		}
	}
}

func TestXLSX(t *testing.T) {
	items, locs := fixtures()
	var buf bytes.Buffer
	if err := XLSX(&buf, items, locs); err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][8] != "Created Date" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][0] != `Widget, "Pro"` {
		t.Errorf("unexpected name %q", rows[1][0])
	}
	if rows[1][6] != "Kitchen/Fridge" {
		t.Errorf("unexpected location %q", rows[1][6])
	}
}
