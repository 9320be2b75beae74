package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/jobs"
	"github.com/shiftscan/shiftscan/internal/svcctx"
)

// ListJobsResponse wraps the job listing.
type ListJobsResponse struct {
	Jobs []*jobs.Record `json:"jobs"`
}

// ListJobsEndpoint handles GET /api/jobs.
type ListJobsEndpoint struct{}

var _ api.Endpoint = (*ListJobsEndpoint)(nil)

func (e *ListJobsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/jobs", e.handler
}

func (e *ListJobsEndpoint) RequiresInit() bool { return true }

func (e *ListJobsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	jm := svcctx.JobManagerFrom(r.Context())
	if jm == nil {
		writeError(w, http.StatusServiceUnavailable, "job manager not initialized")
		return
	}
	writeJSON(w, http.StatusOK, ListJobsResponse{Jobs: jm.List()})
}

func (e *ListJobsEndpoint) Command(getServerURL func() string) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Parse job operations",
	}

	jobsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List parse jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListJobsResponse
			if err := client.Get(cmd.Context(), "/api/jobs", &resp); err != nil {
				return err
			}
			if len(resp.Jobs) == 0 {
				fmt.Println("No jobs")
				return nil
			}
			for _, j := range resp.Jobs {
				fmt.Printf("%s  %-9s  %s  %d/%d  submitted %s\n",
					j.ID, j.Status, j.Source, j.Year, j.Month, humanize.Time(j.CreatedAt))
			}
			return nil
		},
	})

	jobsCmd.AddCommand((&GetJobEndpoint{}).Command(getServerURL))
	return jobsCmd
}

// GetJobEndpoint handles GET /api/jobs/{id}.
type GetJobEndpoint struct{}

var _ api.Endpoint = (*GetJobEndpoint)(nil)

func (e *GetJobEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/jobs/{id}", e.handler
}

func (e *GetJobEndpoint) RequiresInit() bool { return true }

func (e *GetJobEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "job id is required")
		return
	}

	jm := svcctx.JobManagerFrom(r.Context())
	if jm == nil {
		writeError(w, http.StatusServiceUnavailable, "job manager not initialized")
		return
	}

	rec, ok := jm.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (e *GetJobEndpoint) Command(getServerURL func() string) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a parse job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			for {
				var rec jobs.Record
				if err := client.Get(cmd.Context(), "/api/jobs/"+args[0], &rec); err != nil {
					return err
				}
				if !wait || rec.Status.Terminal() {
					return api.Output(rec)
				}
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(500 * time.Millisecond):
				}
			}
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the job finishes")
	return cmd
}
