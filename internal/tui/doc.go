// Package tui is the interactive terminal front end for a table session.
//
// The model shows the rows with a totals footer. Rows can be edited in
// place and columns sorted from the header. Every change goes through the
// session, so edits and sorts land in the journal exactly as they do from
// the command line.
package tui
