package report

// Package report renders the end-of-batch summary and persists the
// failed-URL retry file.
