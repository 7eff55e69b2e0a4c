package handler

// createArticleRequest is the POST /articles body. Articles are normally
// submitted as multipart form data (to carry the optional image), but plain
// JSON is accepted too.
type createArticleRequest struct {
	Title   string `json:"title"   form:"title"   validate:"required,min=3,max=200"`
	Content string `json:"content" form:"content" validate:"required,min=10"`
	Status  string `json:"status"  form:"status"  validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// updateArticleRequest is the PUT /articles/:id body. Pointer fields
// distinguish "absent" from "empty": only supplied fields are written.
type updateArticleRequest struct {
	Title   *string `json:"title"   form:"title"   validate:"omitempty,min=3,max=200"`
	Content *string `json:"content" form:"content" validate:"omitempty,min=10"`
	Status  *string `json:"status"  form:"status"  validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

// articleIDParam validates the :id path parameter.
type articleIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

// listArticlesRequest is the GET /articles query. Page and limit stay
// strings here: the contract requires digit strings, and defaulting happens
// in the service.
type listArticlesRequest struct {
	Page   string `query:"page"   validate:"omitempty,numeric"`
	Limit  string `query:"limit"  validate:"omitempty,numeric"`
	Status string `query:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	Search string `query:"search"`
}
