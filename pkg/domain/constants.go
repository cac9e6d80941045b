package domain

// Defaults for the recipient shown when the launch parameters do not override them.
const (
	DefaultRecipientName  = "Prof. Dr. H. Abd. Halim Soebahar, M.A."
	DefaultRecipientTitle = "(Ketua LPPD Provinsi Jawa Timur)"
)

// Launch parameter keys read from the invitation URL.
const (
	ParamName  = "name"
	ParamTitle = "title"
)

// Form field names accepted by the RSVP form.
const (
	FieldName      = "name"
	FieldAttending = "attending"
)

// MapURL is the venue location surfaced on the details and confirmation pages.
const MapURL = "https://maps.app.goo.gl/WhJBipDf1tVzapiCA"
