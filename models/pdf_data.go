package models

// LRCopyData feeds the LR copy templates.
type LRCopyData struct {
	Company      *CompanyProfile
	Trip         *Trip
	Contacts     string // formatted mobile numbers
	Date         string
	PickupDate   string
	LRNumbers    string
	Lines        []LRCopyLine
	TotalWeight  string
	Freight      string
	FreightWords string
	CopyTitle    string
}

type LRCopyLine struct {
	No        int
	Name      string
	Weight    string
	Unit      string
	RatePerMT string
	Amount    string
}
