package domain

// Company is a listed trading company in the directory.
//
// Symbol and ScripCode are optional short codes; the source data carries
// duplicates and blanks, so neither is unique.
type Company struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	Symbol      string `json:"symbol,omitempty"`
	ScripCode   string `json:"scripcode,omitempty"`
}
