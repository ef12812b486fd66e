package rollcsv

// Profile describes the column layout of one roll export format. New sources
// are supported by appending a Profile; detection is header-driven.
type Profile struct {
	Name      string
	LotCol    string
	WeightCol string
	OwnerCol  string
	EmailCol  string // optional: some registries never export contact emails
}

// requiredCols returns the headers that must all be present for a match.
// The email column is allowed to be missing.
func (p Profile) requiredCols() []string {
	return []string{p.LotCol, p.WeightCol, p.OwnerCol}
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:      "registry",
		LotCol:    "Lot Number",
		WeightCol: "Unit Entitlement",
		OwnerCol:  "Owner Name",
		EmailCol:  "Owner Email",
	},
	{
		Name:      "agency",
		LotCol:    "Lot",
		WeightCol: "Entitlement",
		OwnerCol:  "Owner",
		EmailCol:  "Email",
	},
}
