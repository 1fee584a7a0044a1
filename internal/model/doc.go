package model

// Package model defines domain data structures used across the app: batch
// items, per-item outcomes, the aggregated batch result, and the progress
// event stream consumed by the front ends. Structures carry no behavior
// beyond classification helpers; all mutation happens in the batch runner.
