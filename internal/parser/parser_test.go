package parser

import (
	"strings"
	"testing"
)

const inventorySpec = `{
  "openapi": "3.1.0",
  "info": {"title": "inventory", "version": "1.0.0"},
  "servers": [{"url": "http://api.example.com/v1"}],
  "paths": {
    "/items": {
      "get": {
        "operationId": "listItems",
        "tags": ["items"],
        "parameters": [
          {"name": "limit", "in": "query", "schema": {"type": "integer", "const": 10}}
        ],
        "responses": {"200": {"description": "ok"}}
      },
      "post": {
        "operationId": "createItem",
        "tags": ["items"],
        "responses": {"201": {"description": "created"}}
      }
    },
    "/items/{id}": {
      "get": {
        "operationId": "getItem",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "const": 42}}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func TestParseBytes(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	if p == nil {
		t.Fatal("Parser is nil")
	}
}

func TestParseBytesInvalid(t *testing.T) {
	_, err := ParseBytes([]byte("this is not an openapi document"))
	if err == nil {
		t.Error("Expected error for invalid document")
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile("nonexistent.json")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGetServerURLs(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	urls, err := p.GetServerURLs()
	if err != nil {
		t.Fatalf("Failed to get server URLs: %v", err)
	}

	if len(urls) != 1 || urls[0] != "http://api.example.com/v1" {
		t.Errorf("Expected [http://api.example.com/v1], got %v", urls)
	}
}

func TestGetOperations(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	operations, err := p.GetOperations("http://localhost:8000")
	if err != nil {
		t.Fatalf("Failed to get operations: %v", err)
	}

	if len(operations) != 3 {
		t.Fatalf("Expected 3 operations, got %d", len(operations))
	}

	// Document order: /items before /items/{id}, GET before POST
	expected := []struct {
		path   string
		method string
	}{
		{"/items", "GET"},
		{"/items", "POST"},
		{"/items/{id}", "GET"},
	}

	for i, want := range expected {
		got := operations[i]
		if got.Path != want.path || got.Method != want.method {
			t.Errorf("Operation %d: expected %s %s, got %s %s", i, want.method, want.path, got.Method, got.Path)
		}
	}

	if operations[0].FullPath != "http://localhost:8000/items" {
		t.Errorf("Expected full path http://localhost:8000/items, got %s", operations[0].FullPath)
	}

	if operations[0].OperationID != "listItems" {
		t.Errorf("Expected operation ID listItems, got %s", operations[0].OperationID)
	}

	if len(operations[0].Tags) != 1 || operations[0].Tags[0] != "items" {
		t.Errorf("Expected tags [items], got %v", operations[0].Tags)
	}
}

func TestGetOperationsNoPaths(t *testing.T) {
	spec := `{"openapi": "3.1.0", "info": {"title": "empty", "version": "1.0.0"}}`
	p, err := ParseBytes([]byte(spec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	operations, err := p.GetOperations("http://localhost")
	if err != nil {
		t.Fatalf("Failed to get operations: %v", err)
	}

	if len(operations) != 0 {
		t.Errorf("Expected no operations, got %d", len(operations))
	}
}

func TestGetOperationDetails(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	details, err := p.GetOperationDetails("/items/{id}", "GET")
	if err != nil {
		t.Fatalf("Failed to get operation details: %v", err)
	}

	if details.Path != "/items/{id}" {
		t.Errorf("Expected path /items/{id}, got %s", details.Path)
	}

	if details.Method != "GET" {
		t.Errorf("Expected method GET, got %s", details.Method)
	}

	if details.Operation == nil {
		t.Error("Operation is nil")
	}

	if len(details.Parameters) != 1 {
		t.Fatalf("Expected 1 parameter, got %d", len(details.Parameters))
	}

	if details.Parameters[0].Name != "id" || details.Parameters[0].In != "path" {
		t.Errorf("Expected path parameter id, got %s in %s", details.Parameters[0].Name, details.Parameters[0].In)
	}
}

func TestGetOperationDetailsPathNotFound(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	_, err = p.GetOperationDetails("/missing", "GET")
	if err == nil {
		t.Error("Expected error for unknown path")
	}
}

func TestGetOperationDetailsUnsupportedMethod(t *testing.T) {
	p, err := ParseBytes([]byte(inventorySpec))
	if err != nil {
		t.Fatalf("Failed to parse spec: %v", err)
	}

	_, err = p.GetOperationDetails("/items", "TRACE")
	if err == nil {
		t.Fatal("Expected error for unsupported method")
	}

	if !strings.Contains(err.Error(), "TRACE") {
		t.Errorf("Expected error to name the method, got: %v", err)
	}
}
