package domain

// Category names a class of sensitive data with an associated
// detection rule. Category values appear verbatim inside replacement
// tokens and in persisted records, so they must never change for an
// existing corpus.
type Category string

// Detection categories, in the canonical catalog order.
const (
	// CategoryEmail matches email addresses.
	CategoryEmail Category = "EMAIL_ADDRESS"

	// CategoryPhone matches national and international phone numbers.
	CategoryPhone Category = "PHONE_NUMBER"

	// CategoryIPAddress matches dotted-quad IPv4 addresses.
	CategoryIPAddress Category = "IP_ADDRESS"

	// CategoryCreditCard matches 13-19 digit card numbers with
	// optional space or dash separators.
	CategoryCreditCard Category = "CREDIT_CARD"

	// CategorySSN matches 3-2-4 formatted national ID numbers.
	CategorySSN Category = "SSN"

	// CategoryDate matches common numeric date layouts.
	CategoryDate Category = "DATE"
)

// String returns the category name.
func (c Category) String() string {
	return string(c)
}
