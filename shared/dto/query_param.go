package dto

import (
	"net/http"
	"strconv"

	"hostel/shared/constant"
)

type QueryParams struct {
	Page  int `json:"page"  validate:"omitempty"`
	Limit int `json:"limit" validate:"omitempty"`
}

// FromRequest populates QueryParams from the HTTP request.
// With `defaultRequest` set to true, missing page/limit fall back to the
// service-wide defaults; otherwise only the fields present in the request
// are populated.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Window returns the half-open slice bounds [from, to) for a collection of
// the given length, clamped so callers can index without bounds checks.
// A zero limit means no pagination.
func (q *QueryParams) Window(length int) (int, int) {
	if q.Limit <= 0 {
		return 0, length
	}

	page := q.Page
	if page <= 0 {
		page = constant.DefaultValuePage
	}

	from := (page - 1) * q.Limit
	if from > length {
		from = length
	}

	to := from + q.Limit
	if to > length {
		to = length
	}

	return from, to
}
