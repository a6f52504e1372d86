// Package checks implements the per-port lint rules. Every check walks the
// catalog once, logs what it finds and records counters and maintainer
// notifications in the ledger; no check ever aborts the run.
package checks
