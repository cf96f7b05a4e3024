package types

// Filter represents query parameters for filtering and pagination.
//
//	/api/requests?search=Sanaa&sort=-created_at&filter[status]=PENDING_REVIEW,PENDING_DEPUTY&filter[province_id]=1&page=2&limit=20
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}
