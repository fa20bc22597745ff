// Package core provides the business logic for route map reconciliation.
//
// This package is the heart of the tool, containing all domain logic
// independent of any UI, storage or transport layer. It can be used by the
// CLI, the HTTP server, or tests without modification. Nothing here does
// I/O and nothing runs at import time beyond schema registration.
//
// # Datasets
//
// Two datasets are reconciled:
//
//   - Route map: one row per shop visit performed by a supervisor
//     (Sub Div, Job, Code, Name, DATE, Shop Code, Shop Name, Area,
//     Governorate, District, Comment, Check).
//   - Missing roster: employees flagged as lacking an expected record
//     (a leading composite key, TITLE, EMPLOYEE CODE, EMPLOYEE NAME,
//     GOVERNORATE NAME).
//
// Both are described by a [Schema] and registered at init time. [Conform]
// cleans headers, resolves aliases and fails with a [MissingColumnError]
// when a required column is absent.
//
// # Aggregation
//
// [CountRows], [CountDistinct], [GroupCounts] and [DistinctValues] work on any
// conformed dataset by column name. Results are freshly allocated, never
// reorder the source, and group counts sort by count descending with ties
// kept in first-appearance order.
//
// # Reconciliation
//
// [Reconcile] compares the employee identifier sets of the two datasets:
//
//   - Overlap: in both (visits recorded despite being flagged missing)
//   - Missing-only: in the roster with no visit at all
//
// Identifiers are compared as exact, case-sensitive strings. Missing-only
// employees are resolved back to their roster rows, deduplicated by
// (code, name, title, governorate).
//
// # Pipeline
//
// [Analyze] is the single entry point: it conforms both datasets, computes
// per-dataset statistics, reconciles, and derives visit compliance and
// alerts into a [Report].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL004-VAL009: Validation errors (missing columns, limits, parameters)
//   - FILE001-FILE007: File errors (size, encoding, format)
//   - UPL001-UPL005: Upload errors (busy, cancelled, timeout)
//   - RUN001-RUN002: Stored run errors
package core
