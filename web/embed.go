// Package web holds the browser UI served at /.
package web

import _ "embed"

// Index is the single-page UI. It renders clips in the browser with a canvas
// and MediaRecorder, then posts them to /api/upload.
//
//go:embed static/index.html
var Index []byte
