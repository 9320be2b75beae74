package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/ingest"
	"github.com/shiftscan/shiftscan/internal/jobs"
	"github.com/shiftscan/shiftscan/internal/svcctx"
)

// ParseResponse is returned when a parse job is accepted.
type ParseResponse struct {
	Job *jobs.Record `json:"job"`
}

// ParseEndpoint handles POST /api/parse with a multipart scan upload.
type ParseEndpoint struct{}

var _ api.Endpoint = (*ParseEndpoint)(nil)

func (e *ParseEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/parse", e.handler
}

func (e *ParseEndpoint) RequiresInit() bool { return true }

func (e *ParseEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 64 << 20 // schedule scans are a few MB at most
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("scan")
	if err != nil {
		writeError(w, http.StatusBadRequest, "scan file is required")
		return
	}
	defer file.Close()

	if !ingest.Supported(header.Filename) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported scan format: %s", filepath.Ext(header.Filename)))
		return
	}

	year, month, err := parseYearMonth(r.FormValue("year"), r.FormValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	homeDir := svcctx.HomeFrom(r.Context())
	jm := svcctx.JobManagerFrom(r.Context())
	if homeDir == nil || jm == nil {
		writeError(w, http.StatusServiceUnavailable, "server not fully initialized")
		return
	}

	// Persist the upload under a fresh ID so concurrent uploads of the same
	// file name never collide.
	dstPath := homeDir.UploadPath(uuid.New().String(), filepath.Ext(header.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store upload: %v", err))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dstPath)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store upload: %v", err))
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store upload: %v", err))
		return
	}

	rec, err := jm.Submit(header.Filename, dstPath, year, month)
	if err != nil {
		os.Remove(dstPath)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, ParseResponse{Job: rec})
}

// parseYearMonth validates the optional year/month form fields, defaulting to
// the current month.
func parseYearMonth(yearStr, monthStr string) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1 {
			return 0, 0, fmt.Errorf("invalid year: %q", yearStr)
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month: %q", monthStr)
		}
		month = time.Month(m)
	}
	return year, month, nil
}

func (e *ParseEndpoint) Command(getServerURL func() string) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "parse <scan-file>",
		Short: "Upload a schedule scan and queue a parse job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			fields := map[string]string{}
			if year > 0 {
				fields["year"] = strconv.Itoa(year)
			}
			if month > 0 {
				fields["month"] = strconv.Itoa(month)
			}

			var resp ParseResponse
			if err := client.Upload(cmd.Context(), "/api/parse", args[0], fields, &resp); err != nil {
				return err
			}
			fmt.Printf("Job queued: %s\n", resp.Job.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "schedule year (defaults to current)")
	cmd.Flags().IntVar(&month, "month", 0, "schedule month 1-12 (defaults to current)")
	return cmd
}
