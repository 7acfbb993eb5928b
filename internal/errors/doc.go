// Package errors provides the coded, categorised error type shared by the
// reactor packages.
//
// Every anomaly the reactive engine and the reconciler can detect has a
// registered code. Library code returns these errors (or logs them as
// warnings) instead of panicking; the CLI formats them for the terminal.
//
// # Error Categories
//
//   - reactive: readonly writes and deletes, tracking misuse
//   - render: event handler values, host capability gaps
//   - component: render-context lookups, emits, undeclared props
//   - config: configuration loading and validation
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("R001").WithDetail(`key "count"`)
//	if errors.Is(err, reactive.ErrReadonly) { ... }
//	fmt.Println(err.Format())
//	// Output:
//	// WARN R001: Write to readonly object
//	//
//	//   key "count"
//	//
//	//   Hint: Write through the mutable wrapper instead.
package errors
