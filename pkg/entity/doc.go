// Package entity defines the meal/workout records that flow from the backing
// store into the form and list components. Entries are a tagged variant: the
// Kind field decides how an entry is displayed and where it navigates, so a
// meal with zero ingredients is still a meal. Raw store payloads are checked
// against the embedded OpenAPI component schemas and classified once, at the
// ingestion boundary (Decode / DecodeJSON); nothing downstream inspects field
// presence.
package entity
