package validation

import "testing"

type dateStruct struct {
	Value string `validate:"date"`
}

type clockStruct struct {
	Value string `validate:"clock"`
}

type phoneStruct struct {
	Value string `validate:"phone"`
}

func TestDateValidator(t *testing.T) {
	v := New()
	if err := v.Struct(dateStruct{Value: "2026-06-01"}); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	for _, bad := range []string{"01/06/2026", "2026-13-01", "tomorrow", ""} {
		if err := v.Struct(dateStruct{Value: bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestClockValidator(t *testing.T) {
	v := New()
	if err := v.Struct(clockStruct{Value: "14:00"}); err != nil {
		t.Fatalf("expected valid clock, got %v", err)
	}
	for _, bad := range []string{"2pm", "25:00", "14:60", ""} {
		if err := v.Struct(clockStruct{Value: bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPhoneValidator(t *testing.T) {
	v := New()
	for _, ok := range []string{"5550123", "+15550123456", "020 7946 0958"} {
		if err := v.Struct(phoneStruct{Value: ok}); err != nil {
			t.Fatalf("expected %q to be valid, got %v", ok, err)
		}
	}
	for _, bad := range []string{"abc", "12", ""} {
		if err := v.Struct(phoneStruct{Value: bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidationErrorsHelper(t *testing.T) {
	v := New()
	err := v.Struct(dateStruct{Value: "junk"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if errs := v.ValidationErrors(err); len(errs) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(errs))
	}
	if errs := v.ValidationErrors(nil); errs != nil {
		t.Fatalf("expected nil for nil error")
	}
}
