// Package source fetches the AFS reference lists over HTTP.
//
// Both endpoints return a JSON array and authenticate with a static x-api-key
// header. Any failure is fatal for the run: callers never sync with one list.
package source
