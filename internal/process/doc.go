// Package process terminates headless browser process trees left behind
// by PDF export.
package process
