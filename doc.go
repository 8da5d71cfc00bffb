// Package finance provides the types and functions to manage a personal
// finance ledger: a flat list of credit, debit and transfer transactions kept
// in memory, loaded from and saved to a local file.
//
// The core functionalities include:
//   - Transaction Store: an ordered, in-memory list of transactions with
//     create, read, update and delete operations, and unique ids.
//   - Validation: field parsers shared by bulk loading and interactive input,
//     so a record is held to the same rules wherever it comes from.
//   - Persistence: encoding and decoding transactions to and from CSV and
//     JSONL files through the [Backend] interface. Invalid rows are skipped
//     and reported, never fatal.
//   - Analysis: totals per type, net balance, yearly and customer breakdowns.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finance
