package batch

// Package batch implements the bounded-concurrency download pipeline:
// cancellation token, progress event sink, the per-item processor and the
// worker-pool runner that folds item outcomes into one batch result.
