package recon

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"CourierReconSaas/api"
)

// Audit inserts are best-effort: a nil pool or a failed insert never affects
// the request that triggered them.

func ensureAuditSchema(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recon_audits (
			id          SERIAL PRIMARY KEY,
			user_id     TEXT NOT NULL,
			action      TEXT NOT NULL,
			file_count  INT,
			row_count   INT,
			filename    TEXT,
			client_ip   TEXT,
			created_at  TIMESTAMPTZ DEFAULT now()
		)`)
	if err != nil {
		api.LogError("failed to ensure recon_audits table: %v", err)
	}
}

func insertReconAudit(pool *pgxpool.Pool, userID string, fileCount, rowCount int, clientIP string) error {
	if pool == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx,
		`INSERT INTO recon_audits (user_id, action, file_count, row_count, client_ip) VALUES ($1, 'RECONCILE', $2, $3, $4)`,
		userID, fileCount, rowCount, clientIP)
	return err
}

func insertDownloadAudit(pool *pgxpool.Pool, userID, filename, clientIP string) error {
	if pool == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx,
		`INSERT INTO recon_audits (user_id, action, filename, client_ip) VALUES ($1, 'DOWNLOAD', $2, $3)`,
		userID, filename, clientIP)
	return err
}
