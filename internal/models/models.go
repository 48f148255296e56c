// Package models provides the data structures shared by every stage of the
// ingestion pipeline: raw tabular rows, column mappings, the canonical
// Transaction ledger and the derived monthly aggregates.
package models
