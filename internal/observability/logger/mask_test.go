package logger

import "testing"

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskCookie(t *testing.T) {
	got := MaskCookie("invoicems_session=abcdef1234; theme=xyz")
	want := "invoicems_session=****1234; theme=****xyz"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"token":    "abc12345",
		"nested": map[string]any{
			"session_token": "sess_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["token"] != "****2345" {
		t.Fatalf("expected masked token, got %v", masked["token"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["session_token"] != "****5678" {
		t.Fatalf("expected masked session_token, got %v", nested["session_token"])
	}
}

func TestMaskHeadersPassesThroughSafeHeaders(t *testing.T) {
	masked := MaskHeaders(map[string][]string{
		"Authorization": {"Bearer tok_abcd9876"},
		"Accept":        {"application/json"},
	})
	if masked["Authorization"] != "Bearer ****9876" {
		t.Fatalf("expected masked authorization, got %q", masked["Authorization"])
	}
	if masked["Accept"] != "application/json" {
		t.Fatalf("expected accept untouched, got %q", masked["Accept"])
	}
}
