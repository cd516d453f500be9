// Package subject holds the built-in study subject catalog.
package subject

// Subject is a study discipline exercises are grouped under.
type Subject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Icon      string `json:"icon"`
}

// Defaults is the built-in catalog.
var Defaults = []Subject{
	{ID: "anatomy", Name: "Morphofunctional Sciences (Anatomy)", ShortName: "Anatomy", Icon: "🔬"},
	{ID: "histology", Name: "Morphofunctional Sciences (Histology)", ShortName: "Histology", Icon: "🔍"},
	{ID: "physiology", Name: "Organ Systems Physiology", ShortName: "Physiology", Icon: "🫀"},
	{ID: "semiology", Name: "Clinical Skills (Semiology)", ShortName: "Semiology", Icon: "🩺"},
	{ID: "psychology", Name: "Clinical Skills (Medical Psychology)", ShortName: "Psychology", Icon: "🧠"},
	{ID: "public-health", Name: "Community and Public Health", ShortName: "Public Health", Icon: "🏥"},
	{ID: "medical-english", Name: "Medical English", ShortName: "Med. English", Icon: "🌍"},
	{ID: "tutorial", Name: "Problem-Based Tutorial", ShortName: "Tutorial", Icon: "🧬"},
}

// ByID returns the subject with the given ID, or ok=false if unknown.
func ByID(id string) (Subject, bool) {
	for _, s := range Defaults {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Label returns a short display label for a subject ID, falling back to the
// raw ID for subjects outside the catalog.
func Label(id string) string {
	if s, ok := ByID(id); ok {
		return s.ShortName
	}
	if id == "" {
		return "(none)"
	}
	return id
}
