package dto

// ResolveProductInput is the full selection. All four fields are required and
// zero counts as missing, including for the years; a catalog row with a
// genuine zero year is unreachable through resolution. Known boundary quirk,
// kept for compatibility with the deployed widget contract.
type ResolveProductInput struct {
	BrandID   int64
	ModelID   int64
	YearStart int
	YearEnd   int
}
