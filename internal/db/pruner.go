package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartSessionAuditPruner deletes expired session audit rows with interval.
// The authoritative session state lives in Redis with its own TTL; the audit
// table only records issued sessions, so pruning is best-effort.
func StartSessionAuditPruner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM session_audit
                     WHERE expires_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to prune session audit rows", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("pruned expired session audit rows", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
