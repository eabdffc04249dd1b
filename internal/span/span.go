// Package span defines the data model exchanged between every stage of
// the detection pipeline: the Detection type, the closed filter-type
// vocabulary, and the type-specificity table the arbitrator sorts by.
package span

// FilterType tags a Detection with a category drawn from a closed
// vocabulary. Values outside this set must never be constructed.
type FilterType string

// The closed set of detection categories.
const (
	SSN           FilterType = "SSN"
	MRN           FilterType = "MRN"
	CreditCard    FilterType = "CREDIT_CARD"
	Account       FilterType = "ACCOUNT"
	License       FilterType = "LICENSE"
	Passport      FilterType = "PASSPORT"
	IBAN          FilterType = "IBAN"
	HealthPlan    FilterType = "HEALTH_PLAN"
	Email         FilterType = "EMAIL"
	Phone         FilterType = "PHONE"
	Fax           FilterType = "FAX"
	IP            FilterType = "IP"
	URL           FilterType = "URL"
	MACAddress    FilterType = "MAC_ADDRESS"
	Bitcoin       FilterType = "BITCOIN"
	Vehicle       FilterType = "VEHICLE"
	Device        FilterType = "DEVICE"
	Biometric     FilterType = "BIOMETRIC"
	Date          FilterType = "DATE"
	Zipcode       FilterType = "ZIPCODE"
	Address       FilterType = "ADDRESS"
	City          FilterType = "CITY"
	State         FilterType = "STATE"
	County        FilterType = "COUNTY"
	Age           FilterType = "AGE"
	RelativeDate  FilterType = "RELATIVE_DATE"
	ProviderName  FilterType = "PROVIDER_NAME"
	Name          FilterType = "NAME"
	Occupation    FilterType = "OCCUPATION"
	Custom        FilterType = "CUSTOM"
)

// Specificity maps each FilterType to an integer in [0, 100] used by
// the arbitrator to rank competing detections; it is not injective. It is
// a build-time constant; values within a tier are identical by design
// (spec groups several tags under one specificity band).
var Specificity = map[FilterType]int{
	SSN:          100,
	MRN:          95,
	CreditCard:   90,
	Account:      85,
	License:      85,
	Passport:     85,
	IBAN:         85,
	HealthPlan:   85,
	Email:        80,
	Phone:        75,
	Fax:          75,
	IP:           75,
	URL:          75,
	MACAddress:   75,
	Bitcoin:      75,
	Vehicle:      70,
	Device:       70,
	Biometric:    70,
	Date:         60,
	Zipcode:      55,
	Address:      50,
	City:         45,
	State:        45,
	County:       45,
	Age:          40,
	RelativeDate: 40,
	ProviderName: 36,
	Name:         35,
	Occupation:   30,
	Custom:       20,
}

// SpecificityOf returns the TypeSpecificity value for t, or 25 for an
// unrecognized tag — the mid-table fallback the arbitrator uses rather
// than failing closed or open.
func SpecificityOf(t FilterType) int {
	if v, ok := Specificity[t]; ok {
		return v
	}
	return 25
}

// Detection is the universal unit exchanged between scanners and the
// arbitrator. CharacterStart/CharacterEnd are UTF-16 code-unit offsets
// into the source document, half-open [start, end).
type Detection struct {
	CharacterStart uint32
	CharacterEnd   uint32
	FilterType     FilterType
	Text           string
	Confidence     float64
	Pattern        string
	Priority       int
}

// Len returns the span length in UTF-16 code units.
func (d Detection) Len() uint32 {
	if d.CharacterEnd <= d.CharacterStart {
		return 0
	}
	return d.CharacterEnd - d.CharacterStart
}

// Overlaps reports whether d and o share any UTF-16 code unit.
func (d Detection) Overlaps(o Detection) bool {
	return d.CharacterStart < o.CharacterEnd && o.CharacterStart < d.CharacterEnd
}

// Contains reports whether d fully contains o (d.start <= o.start && d.end >= o.end).
func (d Detection) Contains(o Detection) bool {
	return d.CharacterStart <= o.CharacterStart && d.CharacterEnd >= o.CharacterEnd
}

// ByStart sorts Detections by CharacterStart ascending, matching the
// ordering guarantee scan_all_identifiers and the arbitrator's output
// must provide.
type ByStart []Detection

func (b ByStart) Len() int           { return len(b) }
func (b ByStart) Less(i, j int) bool { return b[i].CharacterStart < b[j].CharacterStart }
func (b ByStart) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
