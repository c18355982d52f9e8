// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion path lives in UploadService, statistics in StatsService
// and retrieval in FileService. Services never touch sqlite or the
// filesystem directly.
package services
