// Package blobstore abstracts where vector snapshots live.
//
// The persistence manager writes snapshot frames through a BlobStore and
// reads them back through Blobs; backends cover the local filesystem (with
// mmap-backed reads), process memory (for tests), S3, and MinIO.
package blobstore
