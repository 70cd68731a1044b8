// Package scheduler drives the reconciliation cycles: once per enabled feed at
// start, then on a shared fixed interval, plus on-demand triggers from the
// console, the HTTP API and the CLI. Failures never stop a loop; the next tick
// simply retries.
package scheduler
