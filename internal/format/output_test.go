package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type greeting struct {
	Name string `json:"name"`
}

func (g greeting) Text() string { return "hello " + g.Name + "\n" }

func TestWrite_TextUsesTexter(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, greeting{Name: "ada"}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "hello ada\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, greeting{Name: "ada"}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var env struct {
		Data greeting `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Data.Name != "ada" {
		t.Fatalf("unexpected envelope %q", buf.String())
	}
	if strings.Contains(buf.String(), "meta") {
		t.Fatalf("expected meta to be omitted")
	}
}

func TestWrite_TextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"n": 1}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"data"`) {
		t.Fatalf("expected json fallback, got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}
