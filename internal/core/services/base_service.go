package services

import (
	"log/slog"

	"github.com/goldloom/jewelshop_backend/internal/dto"
)

// logSyncResult reports the outcome of a post-save sync attempt. The business
// transaction is already committed at this point, so the outcome is purely
// observational.
func logSyncResult(logger *slog.Logger, result dto.TallySyncResult) {
	attrs := []any{
		"tally_kind", string(result.Type),
		"transaction_id", result.TransactionID,
		"reference_no", result.ReferenceNo,
	}
	switch {
	case result.Disabled:
		logger.Debug("Tally sync skipped, disabled in configuration", attrs...)
	case result.Success:
		logger.Info("Tally auto sync succeeded", attrs...)
	default:
		if result.Error != nil {
			attrs = append(attrs, "error", *result.Error)
		}
		logger.Warn("Tally auto sync failed, transaction saved", attrs...)
	}
}
