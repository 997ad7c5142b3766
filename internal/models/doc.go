// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - User: a registered account with a human-facing sequential serial ID
//   - Expense: an immutable expense split among participants
//   - Participant: one user's share of an expense
//   - BalanceSheet: per-user aggregate of what they owe versus what they paid
//
// # Design Principles
//
//  1. **Money is decimal**: all amounts use shopspring decimals so the
//     exact-equality checks on split sums stay exact.
//  2. **Avoid circular references**: expenses reference users by ID plus a
//     resolved display name, never by pointer.
//  3. **Expenses are immutable**: there are no update or delete operations;
//     a wrong expense is corrected by recording a new one.
package models
