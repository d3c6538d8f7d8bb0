package shared

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected IDs to be unique")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID format, got %s", a)
	}
}

func TestGenerateState(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(state) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(state))
	}
	if _, err := hex.DecodeString(state); err != nil {
		t.Errorf("expected hex-encoded state, got %s", state)
	}

	other, _ := GenerateState()
	if state == other {
		t.Error("expected state tokens to be unique")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"message": "hello"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(out) != `{"message":"hello"}` {
			t.Errorf("unexpected output: %s", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Error("expected indented output")
		}
	})
}
