package model

// Version is the application version reported by --version and the web API.
const Version = "0.3.1"

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconStart     = "»" // Origin of the chain
	IconHop       = "→" // Intermediate redirect
	IconFinal     = "■" // Final destination
	IconPreserved = "✓" // Kept through the redirects
	IconChanged   = "≈" // Kept, but the value changed
	IconLost      = "✗" // Dropped by a redirect
	IconAdded     = "+" // Introduced by a redirect
	IconFragment  = "#"
)
