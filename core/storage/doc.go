// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface. The archive package uses it
// to keep the raw API responses that were reconciled, so a domain can be replayed into a
// fresh graph. Both AWS S3 and self-hosted MinIO are supported.
//
// The Client interface makes storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
