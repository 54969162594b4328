// Package s3 implements blobstore.BlobStore on Amazon S3, with an optional
// DynamoDB-backed version pointer for atomically publishing the latest
// snapshot of a vector set.
package s3
