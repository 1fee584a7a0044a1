package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, URL list handling, playlist expansion and OS open/reveal.
