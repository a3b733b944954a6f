package domain

// DateFormat is the wire and storage format of booking dates
const DateFormat = "2006-01-02"

// DefaultQuantity is used when a booking item omits quantity
const DefaultQuantity = 1

// Placeholder email stored for clients without an email: whatsapp_<digits>@temp.local
const (
	PlaceholderEmailPrefix = "whatsapp_"
	PlaceholderEmailDomain = "temp.local"
)

// Fallback names used in notification texts
const (
	DefaultClientName       = "Client"
	DefaultProfessionalName = "Professional"
)
