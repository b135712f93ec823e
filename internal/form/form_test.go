package form

import (
	"strings"
	"testing"
)

func TestValidateCollectsAllErrors(t *testing.T) {
	// Validation must not short-circuit: every invalid field gets a message
	// in a single pass.
	_, errs := BlogPostSchema().Validate(map[string]any{
		"title":     "a",
		"content":   "short",
		"category":  "bogus",
		"author":    "",
		"read_time": "",
	})

	want := []string{"title", "content", "category", "author", "read_time"}
	for _, field := range want {
		if errs[field] == "" {
			t.Errorf("expected error for field %q, got none (errs: %v)", field, errs)
		}
	}
	if len(errs) != len(want) {
		t.Errorf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
}

func TestValidateRequiredEmpty(t *testing.T) {
	_, errs := LoginSchema().Validate(map[string]any{
		"identifier": "   ",
		"password":   "",
	})

	if got := errs["identifier"]; got != "Username or email is required" {
		t.Errorf("identifier error = %q", got)
	}
	if got := errs["password"]; got != "Password is required" {
		t.Errorf("password error = %q", got)
	}
}

func TestValidateMinLength(t *testing.T) {
	_, errs := ContactSchema().Validate(map[string]any{
		"name":    "A",
		"email":   "a@example.com",
		"message": "too short",
	})

	if got := errs["name"]; got != "Name must be at least 2 characters" {
		t.Errorf("name error = %q", got)
	}
	if got := errs["message"]; got != "Message must be at least 10 characters" {
		t.Errorf("message error = %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"user+tag@sub.example.co", true},
		{"not-an-email", false},
		{"missing@domain", false},
		{"@example.com", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		_, errs := ContactSchema().Validate(map[string]any{
			"name":    "Tester",
			"email":   tt.email,
			"message": "a long enough message",
		})
		gotValid := errs["email"] == ""
		if gotValid != tt.valid {
			t.Errorf("email %q: valid = %v, want %v (err: %q)", tt.email, gotValid, tt.valid, errs["email"])
		}
		if !tt.valid && errs["email"] != "Please enter a valid email address" {
			t.Errorf("email %q: message = %q", tt.email, errs["email"])
		}
	}
}

func TestValidateNumberRules(t *testing.T) {
	schema := ProductVariantSchema()

	// Negative price
	_, errs := schema.Validate(map[string]any{"name": "Small", "price": -1.0, "stock": 5})
	if got := errs["price"]; got != "Variant price must be greater than or equal to 0" {
		t.Errorf("price error = %q", got)
	}

	// Fractional stock
	_, errs = schema.Validate(map[string]any{"name": "Small", "price": 9.99, "stock": 2.5})
	if got := errs["stock"]; got != "Stock must be a whole number" {
		t.Errorf("stock error = %q", got)
	}

	// Numeric strings coerce
	values, errs := schema.Validate(map[string]any{"name": "Small", "price": "9.99", "stock": "3"})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if values.Float("price") != 9.99 {
		t.Errorf("price = %v, want 9.99", values.Float("price"))
	}
	if values.Int("stock") != 3 {
		t.Errorf("stock = %v, want 3", values.Int("stock"))
	}
}

func TestValidateSelectOptions(t *testing.T) {
	_, errs := BlogPostSchema().Validate(map[string]any{
		"title":     "Window care",
		"content":   "Some content long enough to pass.",
		"category":  "not-a-category",
		"author":    "Tim",
		"read_time": "5 min",
	})
	if !strings.Contains(errs["category"], "must be one of") {
		t.Errorf("category error = %q", errs["category"])
	}
}

func TestValidateTrimsValues(t *testing.T) {
	values, errs := LoginSchema().Validate(map[string]any{
		"identifier": "  horst  ",
		"password":   "secret",
	})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := values.String("identifier"); got != "horst" {
		t.Errorf("identifier = %q, want %q", got, "horst")
	}
}
