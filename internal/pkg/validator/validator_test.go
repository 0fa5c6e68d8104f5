package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestHasDuplicates(t *testing.T) {
	cases := []struct {
		input []string
		want  bool
	}{
		{nil, false},
		{[]string{"cut"}, false},
		{[]string{"cut", "shave"}, false},
		{[]string{"cut", "shave", "cut"}, true},
	}
	for _, c := range cases {
		if got := HasDuplicates(c.input); got != c.want {
			t.Errorf("HasDuplicates(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"05321234567", "0532 123 45 67", "+905321234567", "905321234567", "5321234567", "0212-555-12-34", "(0532) 123 45 67"}
	invalid := []string{"0532123456", "123", "05321234567890", "abc5321234567", "0532123456a", "00321234567", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Has(t *testing.T) {
	errs := ValidationErrors{{Field: "service_ids", Message: "required"}}
	if !errs.Has("service_ids") {
		t.Errorf("Has(service_ids) = false, want true")
	}
	if errs.Has("notes") {
		t.Errorf("Has(notes) = true, want false")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
