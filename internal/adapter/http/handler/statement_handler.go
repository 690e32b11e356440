package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/csvio"
	"github.com/DonghunLouisLee/transaction-handler/internal/adapter/http/dto"
	"github.com/DonghunLouisLee/transaction-handler/internal/engine"
	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/metrics"
)

// StatementHandler processes uploaded transaction statements.
type StatementHandler struct {
	logger       zerolog.Logger
	metrics      *metrics.Metrics
	idGen        engine.IDGenerator
	maxBodyBytes int64
}

// NewStatementHandler creates a new StatementHandler. Metrics may be nil.
func NewStatementHandler(logger zerolog.Logger, m *metrics.Metrics, idGen engine.IDGenerator, maxBodyBytes int64) *StatementHandler {
	return &StatementHandler{
		logger:       logger,
		metrics:      m,
		idGen:        idGen,
		maxBodyBytes: maxBodyBytes,
	}
}

// Process runs an uploaded CSV statement through a fresh engine and
// responds with the final account snapshot, as CSV when the client asks
// for text/csv and as JSON otherwise. A rejected statement produces no
// snapshot at all.
func (h *StatementHandler) Process(w http.ResponseWriter, r *http.Request) {
	runID := h.idGen.Generate()
	logger := h.logger.With().Str("run_id", runID).Logger()

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()

	eng := engine.New(logger, h.metrics)
	snapshot, err := eng.Process(r.Context(), csvio.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Msg("statement rejected")
		writeError(w, statusFromError(err), "statement rejected", err.Error())

		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("X-Run-Id", runID)
		if err := csvio.NewWriter(w).WriteSnapshot(snapshot); err != nil {
			logger.Error().Err(err).Msg("failed to write snapshot")
		}

		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromSnapshot(runID, snapshot))
}
