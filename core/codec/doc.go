// Package codec encodes and decodes generated images in the PNG, JPEG and
// WEBP containers.
//
// Unrecognized extensions are coerced to PNG by NormalizeFormat. PNG output
// can carry the generation metadata mapping as two tEXt chunks:
//
//   - parameters: the JSON-serialized mapping
//   - fooocus_scheme: the mapping's metadata_scheme field on its own
//
// JPEG and WEBP containers have no equivalent, so metadata is skipped for
// them. Encoding is lossless-safe: PNG uses best compression, JPEG and WEBP
// use fixed quality settings.
//
// Decoding goes through image.Decode and handles all three formats (webp via
// the golang.org/x/image/webp registration).
package codec
