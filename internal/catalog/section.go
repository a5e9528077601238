package catalog

// Section names one storefront catalog surface. It labels metrics, home
// aggregation errors and the static failure message shown to shoppers.
type Section string

const (
	SectionApple         Section = "apple"
	SectionAndroid       Section = "android"
	SectionUsed          Section = "used"
	SectionSpeakers      Section = "speakers"
	SectionCoolers       Section = "coolers"
	SectionAccessories   Section = "accessories"
	SectionBrands        Section = "brands"
	SectionSpeakerBrands Section = "speaker-brands"
	SectionProduct       Section = "product"
)

var failureMessages = map[Section]string{
	SectionApple:         "Catalog fetch failed",
	SectionAndroid:       "Android catalog fetch failed",
	SectionUsed:          "Used items fetch failed",
	SectionSpeakers:      "Speakers fetch failed",
	SectionCoolers:       "Coolers fetch failed",
	SectionAccessories:   "Accessories fetch failed",
	SectionBrands:        "Brands fetch failed",
	SectionSpeakerBrands: "Speaker brands fetch failed",
	SectionProduct:       "Failed to load product",
}

// FailureMessage is the static, user-facing error for the section.
func (s Section) FailureMessage() string {
	if msg, ok := failureMessages[s]; ok {
		return msg
	}
	return "Catalog fetch failed"
}
