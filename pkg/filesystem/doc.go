// Package filesystem provides types.FS implementations backed by the OS
// and by afero, the latter used for in-memory filesystems in tests.
package filesystem
