package model

import (
	"reflect"
	"testing"
)

func TestDedupeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no duplicates", []string{"oak", "pine"}, []string{"oak", "pine"}},
		{"duplicates removed in order", []string{"oak", "pine", "oak", "pine"}, []string{"oak", "pine"}},
		{"case sensitive", []string{"Oak", "oak"}, []string{"Oak", "oak"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DedupeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("tips", BlogCategories) {
		t.Error("tips should be a valid blog category")
	}
	if IsValidCategory("plumbing", BlogCategories) {
		t.Error("plumbing is a product category, not a blog category")
	}
	if IsValidCategory("", PortfolioCategories) {
		t.Error("empty category should be invalid")
	}
}

func TestIsImageMimeType(t *testing.T) {
	for _, mt := range []string{MimeTypeJPEG, MimeTypePNG, MimeTypeWebP, MimeTypeGIF} {
		if !IsImageMimeType(mt) {
			t.Errorf("%s should be allowed", mt)
		}
	}
	for _, mt := range []string{"image/svg+xml", "application/pdf", "text/html", ""} {
		if IsImageMimeType(mt) {
			t.Errorf("%s should be rejected", mt)
		}
	}
}
