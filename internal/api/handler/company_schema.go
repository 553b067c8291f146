package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Symbol      string `json:"symbol"`
	ScripCode   string `json:"scripcode"`
}

// updateCompanyRequest is a partial update: absent fields stay untouched,
// which is why every field is a pointer.
type updateCompanyRequest struct {
	CompanyName *string `json:"company_name"`
	Symbol      *string `json:"symbol"`
	ScripCode   *string `json:"scripcode"`
}

// listCompaniesQuery captures the supported query parameters of the listing.
type listCompaniesQuery struct {
	Search      string `query:"search"`
	Symbol      string `query:"symbol"`
	ScripCode   string `query:"scripcode"`
	CompanyName string `query:"company_name"`
	Ordering    string `query:"ordering"`
}
