package models

// Operation represents a single (path, method) pair declared in an OpenAPI document
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Tags        []string
	ServerURL   string
	FullPath    string // ServerURL + Path, placeholders not yet resolved
}
