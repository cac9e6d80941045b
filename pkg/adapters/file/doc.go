// Package file stores session snapshots as JSON files on local disk.
package file
