package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/svcctx"
)

// GetConfigEndpoint handles GET /api/config.
type GetConfigEndpoint struct{}

var _ api.Endpoint = (*GetConfigEndpoint)(nil)

func (e *GetConfigEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/config", e.handler
}

func (e *GetConfigEndpoint) RequiresInit() bool { return false }

func (e *GetConfigEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cm := svcctx.ConfigManagerFrom(r.Context())
	if cm == nil {
		writeError(w, http.StatusServiceUnavailable, "config manager not initialized")
		return
	}

	// The vision API key stays server-side; blank it rather than leaking a
	// resolved secret over the wire.
	cfg := *cm.Get()
	if cfg.OCR.Vision.APIKey != "" {
		cfg.OCR.Vision.APIKey = "(set)"
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (e *GetConfigEndpoint) Command(getServerURL func() string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Server configuration operations",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the server's active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var cfg config.Config
			if err := client.Get(cmd.Context(), "/api/config", &cfg); err != nil {
				return err
			}
			return api.Output(cfg)
		},
	})

	configCmd.AddCommand((&SetTargetEndpoint{}).Command(getServerURL))
	return configCmd
}

// SetTargetRequest is the body for PUT /api/config/target.
type SetTargetRequest struct {
	TargetName string `json:"target_name"`
}

// SetTargetEndpoint handles PUT /api/config/target: switching which employee
// the parser looks for without restarting the server.
type SetTargetEndpoint struct{}

var _ api.Endpoint = (*SetTargetEndpoint)(nil)

func (e *SetTargetEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/config/target", e.handler
}

func (e *SetTargetEndpoint) RequiresInit() bool { return false }

func (e *SetTargetEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SetTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	req.TargetName = strings.TrimSpace(req.TargetName)
	if req.TargetName == "" {
		writeError(w, http.StatusBadRequest, "target_name is required")
		return
	}

	cm := svcctx.ConfigManagerFrom(r.Context())
	if cm == nil {
		writeError(w, http.StatusServiceUnavailable, "config manager not initialized")
		return
	}

	cm.SetTargetName(req.TargetName)
	writeJSON(w, http.StatusOK, SetTargetRequest{TargetName: cm.Get().TargetName})
}

func (e *SetTargetEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-target <name>",
		Short: "Set the employee name the parser looks for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SetTargetRequest
			if err := client.Put(cmd.Context(), "/api/config/target", SetTargetRequest{TargetName: args[0]}, &resp); err != nil {
				return err
			}
			fmt.Printf("Target name: %s\n", resp.TargetName)
			return nil
		},
	}
}
