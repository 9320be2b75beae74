package endpoints

import "github.com/shiftscan/shiftscan/internal/api"

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Parse pipeline
		&ParseEndpoint{},

		// Job endpoints
		&ListJobsEndpoint{},
		&GetJobEndpoint{},

		// Stored results
		&ListResultsEndpoint{},
		&LatestResultEndpoint{},
		&GetResultEndpoint{},

		// Configuration
		&GetConfigEndpoint{},
		&SetTargetEndpoint{},
	}
}

// CommandEndpoints returns the endpoints that contribute top-level CLI
// commands. Subcommand-only endpoints (job get, result get/latest,
// set-target) hang off their parent's command tree instead.
func CommandEndpoints() []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{},
		&StatusEndpoint{},
		&ParseEndpoint{},
		&ListJobsEndpoint{},
		&ListResultsEndpoint{},
		&GetConfigEndpoint{},
	}
}
