package config

import (
	"reflect"
	"testing"
)

func TestSplitIDList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"Empty", "", nil},
		{"OnlyWhitespace", "   ", nil},
		{"Single", "123", []string{"123"}},
		{"Multiple", "1,2,3", []string{"1", "2", "3"}},
		{"WhitespaceAroundEntries", " 1 , 2 ,3 ", []string{"1", "2", "3"}},
		{"EmptyEntriesDropped", "1,,2,", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIDList(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitIDList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
