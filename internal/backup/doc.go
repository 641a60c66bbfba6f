// Package backup keeps point-in-time copies of settings files.
//
// A copy is taken each time sentry-mcp is about to rewrite a settings file.
// Each backup lives in its own directory below the backup root:
//
//	<DataHome>/sentry-mcp/backups/
//	└── 20260123T100712.123456789/
//	    ├── manifest.json
//	    └── settings.yaml
//
// The manifest records the original path, mode and SHA256 hash of the copy.
// Restore verifies the hash before writing the file back. Only the newest
// DefaultRetentionCount backups are kept.
//
// Backup directories and files are private (0700/0600) since settings files
// carry the Sentry access token.
package backup
