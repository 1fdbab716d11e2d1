package constant

// Cache slot names. A slot is written at most once per session.
const (
	BillingPoliciesSlot = "billing_policies"
)

// Degraded retrieval texts. These are returned to the worker as
// context, never raised as errors, so the worker always has something
// to reason over.
const (
	TechnicalNoResultsMessage = "I couldn't find specific documentation for that issue. Could you provide more details about the error or problem you're experiencing?"
	GeneralNoResultsMessage   = "I couldn't find specific information about that. Could you rephrase your question or ask about something more specific?"
	BillingNoResultsMessage   = "I couldn't find specific billing information for that question. Could you provide more details?"

	TechnicalUnavailableMessage = "Technical documentation is currently unavailable. Please try again later."
	GeneralUnavailableMessage   = "General information is currently unavailable. Please try again later."
	BillingUnavailableMessage   = "Billing information is currently unavailable. Please try again later."
)

// Labels prefixed to the fetched context inside each worker's system
// prompt. They match the sections the instructions refer to.
const (
	TechnicalContextLabel  = "DOCUMENTATION:"
	GeneralContextLabel    = "DOCUMENTATION:"
	BillingContextLabel    = "BILLING POLICIES:"
	ComplianceContextLabel = "COMPLIANCE DOCUMENTATION:"
)

// Compliance placeholder used when a static document cannot be read at
// startup. Startup continues; the worker discloses the gap instead.
const ComplianceDocUnavailablePlaceholder = "[DOCUMENT UNAVAILABLE: this section could not be loaded]"
