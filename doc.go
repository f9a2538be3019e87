// Package dashboard provides the types and functions to track a personal
// investment portfolio organised in allocation sleeves. It is designed to be
// local-first: the whole portfolio is a single JSON document that the user
// owns and can back up or restore at will.
//
// The core functionalities include:
//   - Domain Model: positions (cash accounts, term deposits, funds...),
//     sleeves with their target allocation, and the runway configuration.
//   - Portfolio Calculator: a pure function computing sleeve totals, actual
//     allocation, drift against targets, liquidity runway and the upcoming
//     maturities.
//   - Review: the list of actions derived from the calculator output, used
//     by the monthly review report.
//   - CSV Import: a tolerant CSV tokenizer and a reconciler that merges
//     spreadsheet rows into the position set.
//   - State: the document holding everything, and the named commands that
//     are the only way to mutate it.
//
// This package serves as the foundational logic for the `dash` command-line
// tool.
package dashboard
