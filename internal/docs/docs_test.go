package docs

import (
	"encoding/json"
	"testing"
)

func TestSwaggerDocumentListsRoutes(t *testing.T) {
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger document is not valid JSON: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Errorf("expected basePath /api, got %q", doc.BasePath)
	}

	for _, path := range []string{
		"/category-summary/",
		"/category",
		"/transaction-add",
		"/transactions/",
		"/typst-json/",
		"/excel-export/",
		"/excel-import/",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("route %s missing from swagger document", path)
		}
	}
}
