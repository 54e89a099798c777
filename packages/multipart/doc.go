// Package multipart builds multipart/form-data request bodies in the
// exact wire format browsers emit when submitting a file-upload form.
//
// The layout is fixed: one part per form field, one
// application/octet-stream part for the file, and a terminal boundary
// marker, all with CRLF line endings. Bodies are assembled fully in
// memory; streaming large files is out of scope.
package multipart
