// Package mediatypes classifies file extensions for upload validation and
// artifact delivery. Uploads are restricted to the container formats the
// encoder accepts; the artifact types cover what the pipeline produces.
package mediatypes
