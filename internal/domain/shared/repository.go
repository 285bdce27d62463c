package shared

// Filter represents query filter options shared across repositories.
// Repositories scope every read and write by tenant ID; there is
// deliberately no unscoped list path.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
