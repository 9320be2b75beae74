package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint is one API operation, described once and exposed two ways: as an
// HTTP route on the server and as a CLI command that calls that route.
type Endpoint interface {
	// Route returns the HTTP method, path pattern and handler.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresInit reports whether the handler needs the store and job
	// workers to be up. Such routes answer 503 until the server finishes
	// starting.
	RequiresInit() bool

	// Command returns the cobra command for this operation. getServerURL
	// is evaluated per invocation so the --server flag has been parsed.
	Command(getServerURL func() string) *cobra.Command
}
