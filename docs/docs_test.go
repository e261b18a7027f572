package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not JSON: %v\n%s", err, doc)
	}
	if parsed.Info.Title != "AquaFeed API" {
		t.Fatalf("title = %q", parsed.Info.Title)
	}
	for _, p := range []string{"/api/v1/dashboard", "/api/v1/feed", "/api/v1/alerts/{id}/dismiss", "/api/v1/logs"} {
		if _, ok := parsed.Paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
}
