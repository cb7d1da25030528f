// Package sanakirja provides a chat bot that looks up Finnish words on
// Wiktionary. It fetches the entry page, renders the Finnish section as a
// compact text summary, derives noun and verb stems from the inflection
// tables and offers related terms as follow-up lookups.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, telegram/).
package sanakirja
