// Package main provides the entry point of the wedding site server.
// It serves the public site of a couple (pages, gift registry, transparency
// dashboard and message board) and the organizer panel used to manage it,
// using the Fiber framework. Content lives in a document store backed by
// gorm (mysql, postgres or sqlite) or by a local badger database.
package main
