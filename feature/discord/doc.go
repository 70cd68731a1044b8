// Package discord delivers change notifications to a Discord channel webhook.
//
// Each reconciliation cycle produces at most one message: a header with the
// optional user mention followed by one block per change, in the order the
// engine produced them. Messages above Discord's 2000 character limit are cut
// and end with "**AND MORE**".
package discord
