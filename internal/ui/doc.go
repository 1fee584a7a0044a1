package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It collects the URL list and batch settings, launches batch runs, and renders
// the live progress events and the scrolling log.
