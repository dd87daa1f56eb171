package dto

// EDINETDocumentListResponse is the shape of GET /documents.json.
type EDINETDocumentListResponse struct {
	Metadata EDINETMetadata   `json:"metadata"`
	Results  []EDINETDocument `json:"results"`
}

type EDINETMetadata struct {
	Title       string                `json:"title"`
	Status      string                `json:"status"`
	ResultSet   EDINETResultSet       `json:"resultset"`
	ProcessDate string                `json:"processDateTime"`
	Parameter   EDINETDocumentListReq `json:"parameter"`
}

type EDINETResultSet struct {
	Count int `json:"count"`
}

type EDINETDocumentListReq struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

type EDINETDocument struct {
	DocID          string  `json:"docID"`
	EdinetCode     *string `json:"edinetCode"`
	SecCode        *string `json:"secCode"`
	FilerName      *string `json:"filerName"`
	DocTypeCode    *string `json:"docTypeCode"`
	PeriodStart    *string `json:"periodStart"`
	PeriodEnd      *string `json:"periodEnd"`
	SubmitDateTime string  `json:"submitDateTime"`
	DocDescription *string `json:"docDescription"`
	XbrlFlag       string  `json:"xbrlFlag"`
	WithdrawalStatus string `json:"withdrawalStatus"`
}

type GetEDINETDocumentsParam struct {
	Date string // YYYY-MM-DD
}
