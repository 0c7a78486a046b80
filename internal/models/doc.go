// Package models defines the core domain models for costsplits.
//
// # Models
//
//   - Pool: a named set of participants and the transactions they share
//   - Transaction: one expense, paid by one participant and split by weights
//   - Item: an itemized sub-allocation of a transaction
//
// Participants are identified by position in Pool.People. Every Splits slice
// (on a transaction or on an item) has exactly one weight per participant and
// Transaction.Payer is an index into Pool.People. Whoever mutates the
// participant list is responsible for splicing every Splits slice and shifting
// payer indices; see package state.
//
// # Design Principles
//
//  1. **Plain values**: models carry no behavior beyond copying, and the
//     calculator never mutates them
//  2. **Stable document shape**: JSON tags match the saved/shared document
//     `{pool?, people, transactions}` so files and share links round-trip
//  3. **Weights, not amounts**: a split weight is a proportional share, zero
//     meaning "not involved"
package models
