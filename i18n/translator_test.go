package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Data(t *testing.T) {
	if got := T("invalid_array_length", map[string]string{"got": "4"}); got != "expected 2 or 3 components, got 4" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := T("required", map[string]string{"key": "major"}); got != "required property major missing" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("want code echoed, got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("required", nil); got != "X:required" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T("truncated", nil); got != "truncated" {
		t.Fatalf("nil should restore en, got %q", got)
	}
}
