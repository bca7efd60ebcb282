package constants

// Session / context keys
const (
	SessionCookieName = "fulfillment_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTaskRef = "task_ref"
)

// Pagination bounds
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// UnknownCompanyLabel is shown when no counterparty record can be resolved.
const UnknownCompanyLabel = "Unknown company"

// SummaryContentRunes bounds the consultation text shown in list rows.
const SummaryContentRunes = 60
