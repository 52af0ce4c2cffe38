package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/apismoke/apismoke/internal/models"
	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// Parser handles parsing OpenAPI specification documents
type Parser struct {
	document libopenapi.Document
}

// ParseBytes parses a raw OpenAPI document and returns a Parser instance
func ParseBytes(spec []byte) (*Parser, error) {
	document, err := libopenapi.NewDocument(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	return &Parser{document: document}, nil
}

// ParseFile parses an OpenAPI specification file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}

	return ParseBytes(specBytes)
}

// GetServerURLs returns the server URLs from the OpenAPI spec
func (p *Parser) GetServerURLs() ([]string, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	servers := model.Model.Servers
	if len(servers) == 0 {
		return []string{"http://localhost"}, nil
	}

	urls := make([]string, 0, len(servers))
	for _, server := range servers {
		if server != nil && server.URL != "" {
			urls = append(urls, server.URL)
		}
	}

	return urls, nil
}

// GetOperations extracts all operations from the OpenAPI spec. Paths, and the
// methods under each path, are returned in document order. Only the methods
// the synthesizer knows about (GET/POST/PUT/PATCH/DELETE) are included.
func (p *Parser) GetOperations(serverURL string) ([]models.Operation, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	var operations []models.Operation
	paths := model.Model.Paths

	if paths == nil || paths.PathItems == nil {
		return operations, nil
	}

	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		pathTemplate := pair.Key()
		pathItem := pair.Value()
		if pathItem == nil {
			continue
		}

		for opPair := pathItem.GetOperations().First(); opPair != nil; opPair = opPair.Next() {
			method := strings.ToUpper(opPair.Key())
			op := opPair.Value()
			if op == nil || !knownMethod(method) {
				continue
			}

			tags := []string{}
			if op.Tags != nil {
				tags = append(tags, op.Tags...)
			}

			operations = append(operations, models.Operation{
				Path:        pathTemplate,
				Method:      method,
				OperationID: op.OperationId,
				Tags:        tags,
				ServerURL:   serverURL,
				FullPath:    serverURL + pathTemplate,
			})
		}
	}

	return operations, nil
}

func knownMethod(method string) bool {
	switch method {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}

// OperationDetails carries the pieces of an operation the synthesizer needs
type OperationDetails struct {
	Operation  *v3.Operation
	Path       string
	Method     string
	Parameters []*v3.Parameter
}

// GetOperationDetails extracts detailed information for a specific operation
func (p *Parser) GetOperationDetails(path, method string) (*OperationDetails, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}

	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return nil, fmt.Errorf("path not found: %s", path)
	}

	var pathItem *v3.PathItem
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		if pair.Key() == path {
			pathItem = pair.Value()
			break
		}
	}

	if pathItem == nil {
		return nil, fmt.Errorf("path not found: %s", path)
	}

	var operation *v3.Operation
	switch method {
	case "GET":
		operation = pathItem.Get
	case "POST":
		operation = pathItem.Post
	case "PUT":
		operation = pathItem.Put
	case "PATCH":
		operation = pathItem.Patch
	case "DELETE":
		operation = pathItem.Delete
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}

	if operation == nil {
		return nil, fmt.Errorf("operation not found: %s %s", method, path)
	}

	// Parameters in declared order, path-item level parameters first
	var parameters []*v3.Parameter
	if pathItem.Parameters != nil {
		parameters = append(parameters, pathItem.Parameters...)
	}
	if operation.Parameters != nil {
		parameters = append(parameters, operation.Parameters...)
	}

	return &OperationDetails{
		Operation:  operation,
		Path:       path,
		Method:     method,
		Parameters: parameters,
	}, nil
}
