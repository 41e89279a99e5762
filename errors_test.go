package osver_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/osver"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := osver.Issues{
		{Path: "/major", Code: osver.CodeRequired, Message: "required"},
		{Path: "/minor", Code: osver.CodeRequired},
		{Path: "/patch", Code: osver.CodeInvalidType, Message: "invalid type"},
		{Path: "/", Code: osver.CodeParseError, Message: "x"},
	}
	want := "required at /major: required; required at /minor; invalid_type at /patch: invalid type; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("Error() = %q\nwant      %q", got, want)
	}
	if got := (osver.Issues{}).Error(); got != "" {
		t.Fatalf("empty Issues.Error() = %q", got)
	}
}

func TestIssues_ErrorsIs(t *testing.T) {
	cause := &osver.ParseError{Input: "1", Err: osver.ErrInvalidArrayLength}
	var err error = osver.Issues{{Path: "/", Code: osver.CodeInvalidArrayLength, Cause: cause}}

	if !errors.Is(err, osver.ErrDataCorrupted) {
		t.Fatalf("Issues should match ErrDataCorrupted")
	}
	if !errors.Is(err, osver.ErrInvalidArrayLength) {
		t.Fatalf("Issues should expose the cause sentinel")
	}
	var pe *osver.ParseError
	if !errors.As(err, &pe) || pe.Input != "1" {
		t.Fatalf("errors.As should find the *ParseError cause")
	}
	if errors.Is(osver.Issues{}, osver.ErrDataCorrupted) {
		t.Fatalf("empty Issues must not match ErrDataCorrupted")
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", osver.Issues{{Code: osver.CodeTruncated}})
	iss, ok := osver.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != osver.CodeTruncated {
		t.Fatalf("AsIssues = %v, %v", iss, ok)
	}
	if _, ok := osver.AsIssues(nil); ok {
		t.Fatalf("AsIssues(nil) should report false")
	}
	if _, ok := osver.AsIssues(errors.New("plain")); ok {
		t.Fatalf("AsIssues(plain) should report false")
	}
}

func TestAppendIssues(t *testing.T) {
	var iss osver.Issues
	iss = osver.AppendIssues(iss, osver.Issue{Code: "a"}, osver.Issue{Code: "b"})
	if got := iss.Codes(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("codes = %v", got)
	}
	if osver.AppendIssues(nil) == nil {
		t.Fatalf("AppendIssues should initialize the slice")
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := osver.Parse("10")
	if got, want := err.Error(), `osver: invalid version format: "10"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestDecodeIssue_Messages(t *testing.T) {
	_, err := osver.Decode([]any{1, 2, 3, 4})
	iss, _ := osver.AsIssues(err)
	if iss[0].Message != "expected 2 or 3 components, got 4" {
		t.Fatalf("message = %q", iss[0].Message)
	}
	if iss[0].Offset != -1 {
		t.Fatalf("offset = %d", iss[0].Offset)
	}
	_, err = osver.Decode(map[string]any{"minor": 1})
	iss, _ = osver.AsIssues(err)
	if iss[0].Message != "required property major missing" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}
