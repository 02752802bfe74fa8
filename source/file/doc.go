// Package file reads recipe sources from JSON and YAML files on disk.
//
// The expected shape is a top-level array (JSON) or sequence (YAML) of
// entries with title, tags, viewCount, and createdAt fields. Creation
// dates may use any common format; they are resolved with dateparse.
package file
