// Package output manages generated image files.
//
// Files are written under a configured base directory, partitioned into
// per-day date buckets (YYYY-MM-DD). The forward-slash relative path
// returned by Save is the identifier callers hold for every later
// operation; files are never rewritten, only read or deleted.
//
// # Operations
//
//   - Save: Encode an image (png/jpeg/webp) into today's date bucket,
//     embedding generation metadata into PNG text chunks.
//   - Delete: Quietly remove a saved file; failures are logged, never
//     returned.
//   - ToBytes / ToBase64: Re-encode a saved file as plain PNG for transport.
//   - Upload: Copy a saved file into the remote bucket under
//     <user>/<transaction>/<path> and return its public URL.
//   - ServeURL: Compose the local static-server URL for a saved file.
//   - EnsureBucket: Startup check that the remote bucket exists.
//
// Read-style operations translate missing inputs and missing files into
// zero-value results with nil errors; Save and Upload propagate their
// failures.
package output
