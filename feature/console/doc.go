// Package console reads operator commands from a line-oriented input such as
// stdin and drives the poll scheduler with them.
package console
