// Package storage reads and writes snapshot files.
//
// The Backend interface is what export, import and backups talk to. Two
// implementations exist:
//
//   - LocalBackend: files below a directory, through an afero filesystem so
//     tests can run against afero.NewMemMapFs.
//   - ObjectBackend: objects in an S3 compatible bucket through the MinIO
//     client. The bucket is created on the first write if it is missing.
//
// The Client interface wraps the MinIO client so the object backend can be
// tested with core/storage/mocks.
//
// # Usage
//
//	backend, err := storage.NewBackend(cfg.Storage)
//	err = backend.WriteBytes(ctx, "watchlist_export_all_20240301_100000.json", data)
package storage
