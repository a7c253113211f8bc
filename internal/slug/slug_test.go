package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation stripped",
			input:    "Hello, World! (2026)",
			expected: "hello-world-2026",
		},
		{
			name:     "multiple spaces collapsed",
			input:    "a   b    c",
			expected: "a-b-c",
		},
		{
			name:     "underscores become hyphens",
			input:    "snake_case_title",
			expected: "snake-case-title",
		},
		{
			name:     "leading and trailing noise trimmed",
			input:    "  --Hello--  ",
			expected: "hello",
		},
		{
			name:     "accented latin",
			input:    "Café au Lait",
			expected: "cafe-au-lait",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.expected {
				t.Fatalf("Make(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMakeKoreanTitle(t *testing.T) {
	got := Make("테스트 뉴스")
	if got == "" {
		t.Fatal("expected non-empty slug for Korean title")
	}
	if !IsValid(got) {
		t.Fatalf("expected valid slug, got %q", got)
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"테스트 뉴스",
		"2026년 신제품 출시 안내",
		"ESG 경영 보고서 (상반기)",
		"Café au Lait!!",
	}
	for _, input := range inputs {
		once := Make(input)
		twice := Make(once)
		if once != twice {
			t.Fatalf("Make not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "hello-world", "abc-123"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "UPPER", "has space", "한글"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
