// Package reconcile turns a snapshot of shared-cost events into outstanding
// balances and settlement instructions.
//
// Expenses are split equally across an activity's participants. Each
// participant's shortfall is spread over that activity's over-payers in
// proportion to how much they are owed, and the resulting directed edges are
// accumulated across activities. Direct payments are subtracted from the
// payer→payee edge.
//
// The accumulated edges have two independent consumers. SimplifyPairwise nets
// every pair of users into at most one Balance, preserving who actually dealt
// with whom. MatchGlobal ignores pair identity and greedily matches net
// debtors against net creditors, producing the fewest transfers.
//
// All arithmetic is float64 at full precision; amounts are rounded once, when
// a Balance is emitted. Nothing here performs I/O or keeps state between
// calls.
package reconcile
