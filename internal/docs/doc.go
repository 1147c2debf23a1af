// Package docs renders Markdown documentation for components, categories
// and patterns, converts it to HTML or plain text, and searches it.
//
// Documents are built from catalogue records only. Markdown is the source
// format; HTML output is produced with goldmark and sanitised with
// bluemonday, and plain output is rendered with glamour's notty style.
package docs
