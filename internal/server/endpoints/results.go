package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/store"
	"github.com/shiftscan/shiftscan/internal/svcctx"
)

// ListResultsResponse wraps the stored parse results.
type ListResultsResponse struct {
	Results []*store.SavedResult `json:"results"`
}

// ListResultsEndpoint handles GET /api/results.
type ListResultsEndpoint struct{}

var _ api.Endpoint = (*ListResultsEndpoint)(nil)

func (e *ListResultsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/results", e.handler
}

func (e *ListResultsEndpoint) RequiresInit() bool { return true }

func (e *ListResultsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", v))
			return
		}
		limit = n
	}

	results, err := st.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []*store.SavedResult{}
	}
	writeJSON(w, http.StatusOK, ListResultsResponse{Results: results})
}

func (e *ListResultsEndpoint) Command(getServerURL func() string) *cobra.Command {
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Stored parse result operations",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored parse results",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/results"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			var resp ListResultsResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			if len(resp.Results) == 0 {
				fmt.Println("No results")
				return nil
			}
			for _, res := range resp.Results {
				fmt.Printf("%s  %s  %s  %d-%02d  %d shifts  parsed %s\n",
					res.ID, res.Source, res.Result.Person,
					res.Result.Year, res.Result.Month,
					len(res.Result.Records), humanize.Time(res.CreatedAt))
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "max results to list (0 = all)")

	resultsCmd.AddCommand(listCmd)
	resultsCmd.AddCommand((&GetResultEndpoint{}).Command(getServerURL))
	resultsCmd.AddCommand((&LatestResultEndpoint{}).Command(getServerURL))
	return resultsCmd
}

// GetResultEndpoint handles GET /api/results/{id}.
type GetResultEndpoint struct{}

var _ api.Endpoint = (*GetResultEndpoint)(nil)

func (e *GetResultEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/results/{id}", e.handler
}

func (e *GetResultEndpoint) RequiresInit() bool { return true }

func (e *GetResultEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "result id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	saved, err := st.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "result not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (e *GetResultEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a stored parse result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var saved store.SavedResult
			if err := client.Get(cmd.Context(), "/api/results/"+args[0], &saved); err != nil {
				return err
			}
			return api.Output(saved)
		},
	}
}

// LatestResultEndpoint handles GET /api/results/latest.
//
// The literal segment is registered alongside /api/results/{id}; the Go 1.22
// mux prefers the more specific pattern, so "latest" never shadows an ID.
type LatestResultEndpoint struct{}

var _ api.Endpoint = (*LatestResultEndpoint)(nil)

func (e *LatestResultEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/results/latest", e.handler
}

func (e *LatestResultEndpoint) RequiresInit() bool { return true }

func (e *LatestResultEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	saved, err := st.Latest(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no results stored yet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (e *LatestResultEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Get the most recent parse result",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var saved store.SavedResult
			if err := client.Get(cmd.Context(), "/api/results/latest", &saved); err != nil {
				return err
			}
			return api.Output(saved)
		},
	}
}
