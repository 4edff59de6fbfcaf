package permit

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/tjporte/internal/roles"
)

func TestValidatePassport(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"separators stripped", "123.456-789", "123456789", nil},
		{"plain digits", "123456789", "123456789", nil},
		{"eleven digits", "12345678901", "12345678901", nil},
		{"inner spaces", "123 456\t789", "123456789", nil},
		{"letter", "12A3456", "", ErrNonNumericPassport},
		{"twelve digits", "123456789012", "", ErrPassportTooLong},
		{"twelve digits with separators", "123.456.789-012", "", ErrPassportTooLong},
		{"empty", "", "", ErrNonNumericPassport},
		{"only separators", ".- .", "", ErrNonNumericPassport},
		{"slash", "123/456", "", ErrNonNumericPassport},
		{"non-ascii digit", "١٢٣", "", ErrNonNumericPassport},
		{"letters and too long", "1234567890123A", "", ErrNonNumericPassport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePassport(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidatePassport(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidatePassport(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidatePassportAcceptsIffCleanDigits(t *testing.T) {
	inputs := []string{
		"1", "0", "00000000000", "000000000000", "1.2.3", "1-2-3", " 9 ",
		"x", "1x", "1.2.3.4.5.6.7.8.9.0.1", "1.2.3.4.5.6.7.8.9.0.1.2", "+123",
	}
	for _, raw := range inputs {
		cleaned := strings.NewReplacer(".", "", "-", "", " ", "", "\t", "").Replace(raw)
		allDigits := cleaned != ""
		for _, r := range cleaned {
			if r < '0' || r > '9' {
				allDigits = false
			}
		}
		wantOK := allDigits && len(cleaned) <= MaxPassportDigits

		_, err := ValidatePassport(raw)
		if (err == nil) != wantOK {
			t.Errorf("ValidatePassport(%q) ok=%v, want ok=%v", raw, err == nil, wantOK)
		}
	}
}

func TestBlocksSelfRequest(t *testing.T) {
	tbl := roles.Table{Attorney: "Attorney", Judge: "Judge", Prosecutor: "Prosecutor", CourtStaff: "Court Staff"}
	judge := roles.NewSet("Judge")

	if !BlocksSelfRequest(tbl, judge, "Maria", "Maria", "Maria") {
		t.Error("judge naming themself as attorney and client should be blocked")
	}
	if BlocksSelfRequest(tbl, judge, "Maria", "Dr. Silva", "Maria") {
		t.Error("attorney requesting on a judge's behalf should not be blocked")
	}
	if BlocksSelfRequest(tbl, judge, "Maria", "Maria", "João") {
		t.Error("judge acting as attorney for someone else should not be blocked")
	}
	if BlocksSelfRequest(tbl, roles.NewSet("Attorney"), "Maria", "Maria", "Maria") {
		t.Error("non-judge self request should not be blocked")
	}
}

var processIDPattern = regexp.MustCompile(`^PORT-\d{8}-\d{6}$`)

func TestGenerateProcessIDFormat(t *testing.T) {
	now := time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)
	got := GenerateProcessID(now)
	if got != "PORT-20260307-090503" {
		t.Errorf("GenerateProcessID = %q", got)
	}
	if !processIDPattern.MatchString(GenerateProcessID(time.Now())) {
		t.Error("process ID for current time does not match pattern")
	}
}

func TestGenerateProcessIDNonDecreasing(t *testing.T) {
	start := time.Date(2026, time.December, 31, 23, 59, 57, 0, time.UTC)
	prev := GenerateProcessID(start)
	for i := 1; i <= 5; i++ {
		next := GenerateProcessID(start.Add(time.Duration(i) * time.Second))
		if next < prev {
			t.Fatalf("process IDs decreased: %q then %q", prev, next)
		}
		prev = next
	}
}

func TestGenerateProcessIDSameSecondCollides(t *testing.T) {
	base := time.Date(2026, time.May, 1, 12, 0, 0, 100, time.UTC)
	a := GenerateProcessID(base)
	b := GenerateProcessID(base.Add(500 * time.Millisecond))
	if a != b {
		t.Errorf("expected identical IDs within one second, got %q and %q", a, b)
	}
}
