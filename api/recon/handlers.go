package recon

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"CourierReconSaas/api"
	"CourierReconSaas/api/constants"
	"CourierReconSaas/internal/config"
	"CourierReconSaas/internal/predict"
	"CourierReconSaas/internal/resultstore"
	"CourierReconSaas/internal/tabular"
)

// fileOutcome is the result of ingesting and summarizing one upload. Exactly
// one of summary/notice is set; table is nil for skipped files.
type fileOutcome struct {
	summary *tabular.FileSummary
	table   *tabular.Table
	notice  string
}

// processUpload ingests one uploaded file fully in memory. File-scoped
// failures come back as a user-visible notice, never an error: a bad file must
// not abort the batch.
func processUpload(fh *multipart.FileHeader) fileOutcome {
	f, err := fh.Open()
	if err != nil {
		return fileOutcome{notice: constants.FormatError(constants.ErrFileProcessing, fh.Filename, err)}
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return fileOutcome{notice: constants.FormatError(constants.ErrFileProcessing, fh.Filename, err)}
	}

	if isArchiveEnabled() {
		go archiveUpload(context.Background(), fh.Filename, data)
	}

	table, err := tabular.ParseUpload(fh.Filename, data)
	if err != nil {
		var unsupported *tabular.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return fileOutcome{notice: constants.FormatError(constants.ErrUnsupportedFileType, fh.Filename)}
		}
		var parseErr *tabular.ParseError
		if errors.As(err, &parseErr) {
			return fileOutcome{notice: constants.FormatError(constants.ErrFileProcessing, fh.Filename, parseErr.Err)}
		}
		return fileOutcome{notice: constants.FormatError(constants.ErrFileProcessing, fh.Filename, err)}
	}

	summary := tabular.Summarize(table, fh.Filename, config.FilePreviewRows, config.TopDeliveryZones)
	return fileOutcome{summary: summary, table: table}
}

// ReconcileHandler accepts a multipart batch of tabular uploads, runs the
// reconciliation pipeline and responds with per-file summaries, the merged
// preview, the discrepancy summary, chart series and the prediction outcome.
func ReconcileHandler(pool *pgxpool.Pool, store resultstore.Store, adapter *predict.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := api.GetSessionFromCtx(r.Context())
		if session == nil {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		if r.MultipartForm == nil {
			if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrFailedToParseForm)
				return
			}
		}
		files := r.MultipartForm.File[constants.KeyFiles]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFilesUploaded)
			return
		}
		allEmpty := true
		for _, fh := range files {
			if fh.Filename != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrSelectAtLeastOne)
			return
		}

		// Per-file ingestion is independent; fan out and join before the
		// merge. Indexed slots keep upload order.
		outcomes := make([]fileOutcome, len(files))
		var wg sync.WaitGroup
		for i, fh := range files {
			if fh.Filename == "" {
				outcomes[i] = fileOutcome{notice: constants.FormatError(constants.ErrUnsupportedFileType, fh.Filename)}
				continue
			}
			wg.Add(1)
			go func(i int, fh *multipart.FileHeader) {
				defer wg.Done()
				outcomes[i] = processUpload(fh)
			}(i, fh)
		}
		wg.Wait()

		var (
			notices   = []string{}
			summaries = []*tabular.FileSummary{}
			tables    []*tabular.Table
		)
		for _, o := range outcomes {
			if o.notice != "" {
				notices = append(notices, o.notice)
				continue
			}
			summaries = append(summaries, o.summary)
			tables = append(tables, o.table)
		}
		if len(tables) == 0 {
			api.RespondWithPayload(w, false, constants.ErrNoValidFiles, map[string]interface{}{
				"notices": notices,
			})
			return
		}

		result, err := tabular.Reconcile(tables)
		if err != nil {
			api.RespondWithPayload(w, false, constants.ErrNoValidFiles, map[string]interface{}{
				"notices": notices,
			})
			return
		}

		if err := store.Save(result.Merged); err != nil {
			api.LogError("saving result file: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrExportFailed)
			return
		}

		prediction := adapter.Describe(result.Merged)

		go func() {
			if err := insertReconAudit(pool, session.UserID, len(files), len(result.Merged.Rows), r.RemoteAddr); err != nil {
				api.LogError("failed to insert reconciliation audit: %v", err)
			}
		}()

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"username":       session.Username,
			"model_ready":    adapter.Ready(),
			"notices":        notices,
			"file_summaries": summaries,
			"merged_table":   result.Merged.Records(config.MergedPreviewRows),
			"summary_table":  result.Summary,
			"chart_labels":   result.ChartLabels,
			"chart_data":     result.ChartData,
			"prediction":     prediction,
		})
	}
}

// DownloadHandler streams back the latest exported result as an attachment.
// With no prior successful export it answers with a user-visible message, not
// a transport error.
func DownloadHandler(pool *pgxpool.Pool, store resultstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := api.GetSessionFromCtx(r.Context())
		if session == nil {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		data, filename, err := store.Latest()
		if err != nil {
			if errors.Is(err, resultstore.ErrNoResult) {
				api.RespondWithPayload(w, false, constants.ErrNoResultAvailable, nil)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}

		go func() {
			if err := insertDownloadAudit(pool, session.UserID, filename, r.RemoteAddr); err != nil {
				api.LogError("failed to insert download audit: %v", err)
			}
		}()

		w.Header().Set(constants.ContentTypeText, constants.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		http.ServeContent(w, r, filename, time.Now(), bytes.NewReader(data))
	}
}
