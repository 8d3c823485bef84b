// Package model contains the documents the site is made of: the settings
// singleton, gifts, pages with their sections and the guest messages.
//
// JSON field names match the stored documents, so records written by older
// releases (and the local state blob) decode into these types unchanged.
package model
