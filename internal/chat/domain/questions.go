package domain

// Field keys of the qualification questions. They double as the intake
// contract's field names.
const (
	FieldPhone            = "phone"
	FieldFamilyBackground = "family_background"
	FieldOccupation       = "occupation"
	FieldLocation         = "location"
	FieldBudget           = "budget"
	FieldTimeline         = "timeline"
)

// Question is one immutable descriptor of the qualification sequence.
// Localized title, description, and prompt live in the locale tables keyed
// by Field.
type Question struct {
	Field string
	Icon  string
}

// Questions is the fixed, ordered qualification sequence. Order is
// significant and must not change: answers are recorded positionally.
var Questions = []Question{
	{Field: FieldPhone, Icon: "📱"},
	{Field: FieldFamilyBackground, Icon: "👨‍👩‍👧‍👦"},
	{Field: FieldOccupation, Icon: "💼"},
	{Field: FieldLocation, Icon: "📍"},
	{Field: FieldBudget, Icon: "💰"},
	{Field: FieldTimeline, Icon: "🗓️"},
}
