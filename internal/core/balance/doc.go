// Package balance derives daily totals, opening balances, running balances and
// monthly profit/loss figures from flat lists of ledger rows.
//
// Everything here is a pure function of its arguments. The package performs no
// I/O and keeps no state between calls, so a single Calculator can be shared by
// any number of request handlers. Callers that need a consistent view must load
// all rows they pass in within one read transaction.
package balance
