// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for uploading
// generated image files and deriving their public URLs. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks). The client is constructed once at startup from
// explicit configuration and injected into consumers.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - PublicURL: Composes the serving URL for an uploaded object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	url := client.PublicURL("generations", "user/tx/2024-03-22/img.png")
package storage
