package vqa

// Failure reasons attached to per-image errors. The strings match the ones
// existing log tooling greps for, so they keep their original capitalization.
const (
	ReasonImageOpen = "Image open failed"
	ReasonAPICall   = "Gemini API call failed"
	ReasonParse     = "Failed to parse Gemini response"
	ReasonUnknown   = "Unknown response error"
	ReasonMalformed = "Malformed annotation"
)

// Failure is a tagged per-image error. Raw holds the model output or error text for diagnostics.
type Failure struct {
	Reason string
	Raw    string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Reason + ": " + f.Err.Error()
	}
	return f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Detail returns the raw diagnostic text cut to at most limit runes
func (f *Failure) Detail(limit int) string {
	raw := f.Raw
	if raw == "" {
		if f.Err == nil {
			return "no details"
		}
		raw = f.Err.Error()
	}
	r := []rune(raw)
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return raw
}
