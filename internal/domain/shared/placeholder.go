// Package shared holds values common to several domains.
package shared

// UnknownName stands in for a customer, employee or service that no longer exists.
const UnknownName = "Unknown"
