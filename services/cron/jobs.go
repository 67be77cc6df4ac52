package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/auth"
)

const auditRetentionDays = 90

// CleanupTokenBlacklist removes expired entries from the JWT blacklist.
func (m *CronManager) CleanupTokenBlacklist() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobName := "cleanup_token_blacklist"

	blacklist := auth.NewBlacklistService(m.db)
	removed, err := blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup blacklist: %w", err))
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired tokens", removed))
}

// PruneAuditLogs deletes admin audit rows past the retention window.
func (m *CronManager) PruneAuditLogs() {
	jobName := "prune_audit_logs"

	audit := services.NewAuditService(m.db)
	removed, err := audit.PruneOlderThan(auditRetentionDays)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to prune audit logs: %w", err))
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("Removed %d audit rows older than %d days", removed, auditRetentionDays))
}

// BackupSnapshot serializes the full dataset and uploads it to the backup
// bucket. Skipped when no backup client is configured.
func (m *CronManager) BackupSnapshot() {
	jobName := "backup_snapshot"

	if m.backup == nil {
		m.logJobComplete(jobName, "Backup bucket not configured; skipped")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	snap, err := services.NewSnapshotService(m.db).Load()
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to load snapshot: %w", err))
		return
	}

	key, err := m.backup.UploadSnapshot(ctx, snap, time.Now())
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to upload snapshot: %w", err))
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("Uploaded %s", key))
}
