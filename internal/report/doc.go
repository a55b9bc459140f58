// Package report encodes scenario outcomes as JSON or YAML and uploads
// them to S3.
package report
