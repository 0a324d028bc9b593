package model

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"  ", "0"},
		{"12.50", "12.5"},
		{" 5.99 ", "5.99"},
		{"1000", "1000"},
		{"abc", "0"},
		{"12,00", "0"},
		{"-4", "0"},
		{"0.01", "0.01"},
	}

	for _, tt := range tests {
		got := ParseValue(tt.in)
		if got.String() != tt.want {
			t.Errorf("ParseValue(%q) = %s, want %s", tt.in, got.String(), tt.want)
		}
	}
}

func TestValidAchievementType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{AchievementItemsCount, true},
		{AchievementTotalValue, true},
		{AchievementLocationsCount, true},
		{"", false},
		{"photos_count", false},
	}

	for _, tt := range tests {
		if got := ValidAchievementType(tt.typ); got != tt.want {
			t.Errorf("ValidAchievementType(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
