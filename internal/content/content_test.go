package content

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/lifeos/internal/model"
)

func TestDoaForDay_Rotation(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "Doa Kemudahan Urusan"},
		{2, "Doa Memohon Rezeki Halal"},
		{3, "Doa Memohon Kebaikan Dunia Akhirat"},
		{31, "Doa Kemudahan Urusan"},
	}
	for _, tt := range tests {
		d := time.Date(2026, time.January, tt.day, 9, 0, 0, 0, time.UTC)
		if got := DoaForDay(d).Title; got != tt.want {
			t.Errorf("day %d: got %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestRandomQuote_FromPool(t *testing.T) {
	for i := 0; i < 50; i++ {
		q := RandomQuote()
		found := false
		for _, p := range Quotes {
			if p == q {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("RandomQuote returned %+v not in pool", q)
		}
	}
}

func TestGreeting(t *testing.T) {
	if !strings.Contains(Greeting(model.ModeGeneral), "OS Kehidupan") {
		t.Error("general greeting missing assistant name")
	}
	if !strings.Contains(Greeting(model.ModeBusiness), "bisnis") {
		t.Error("business greeting missing business context")
	}
}

func TestQuoteCategory_Heading(t *testing.T) {
	if QuoteQuran.Heading() != "Ayat Pilihan" || QuoteHadith.Heading() != "Hadits Hari Ini" || QuoteMotivation.Heading() != "Motivasi Islami" {
		t.Error("unexpected quote headings")
	}
}
