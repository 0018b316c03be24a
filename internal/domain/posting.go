package domain

// Sentinel values keep every Posting field total: a consumer never has to
// distinguish "missing" from "empty", it just sees the placeholder.
const (
	NoCompany = "No Company Name"
	NoLogo    = "No Logo URL"
	NoTitle   = "No Title"
	NoSummary = "No Summary"
	NoDDay    = "No D-Day"
	NoURL     = "No URL"
)

// Posting is one scraped listing. Field order matches the legacy CSV schema,
// which the csv tags are part of; changing either breaks old files.
type Posting struct {
	CompanyName string `csv:"Company Name"`
	LogoURL     string `csv:"Logo URL"`
	JobTitle    string `csv:"Job Title"`
	JobSummary  string `csv:"Job Summary"`
	DDay        string `csv:"D-Day"`
	JobURL      string `csv:"Job URL"`
	ScrapedDate string `csv:"Scraped Date"`
}

// KeyFunc identifies a posting for reconciliation.
type KeyFunc func(Posting) string

// KeyURLOnly dedups strictly by job URL. Postings that all carry the
// "No URL" sentinel collapse into one record under this policy.
func KeyURLOnly(p Posting) string {
	return p.JobURL
}

// KeyURLTitle is the canonical policy: URL plus title, so sentinel URLs on
// unrelated postings don't collide.
func KeyURLTitle(p Posting) string {
	return p.JobURL + "\x1f" + p.JobTitle
}
