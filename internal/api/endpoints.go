package api

const (
	// BaseURL is the base URL of the café Analog status service
	BaseURL = "https://cafeanalog.dk/api"

	// EndpointOpen returns whether the café is open right now
	// Response: {"open": bool}
	EndpointOpen = "/open"

	// EndpointShifts returns the staffed shifts of the current week
	// Response: [{"id": int, "open": "2006-01-02T15:04:05", "close": "..."}]
	EndpointShifts = "/shifts"
)

// Timezone is the café's local zone; shift times are expressed in it
const Timezone = "Europe/Copenhagen"
