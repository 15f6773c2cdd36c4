// Package notify delivers provisioning run summaries.
//
// Core types:
//   - Notifier: interface for sending notifications
//   - Event: run event with type, message, severity, and metadata
//
// Implementations:
//   - LogNotifier: logs events through slog (the default)
//   - WebhookNotifier: posts events to a generic HTTP webhook
//   - MultiNotifier: fans out to multiple notifiers
//   - NopNotifier: discards everything
package notify
