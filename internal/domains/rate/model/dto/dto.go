package dto

type QuoteRequest struct {
	RoomType string `json:"room_type" validate:"required,oneof=dorm private ensuite"`
	CheckIn  string `json:"check_in"  validate:"required,bookdate"`
	CheckOut string `json:"check_out" validate:"required,bookdate"`
}

type QuoteResponse struct {
	RoomType    string `json:"room_type"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Nights      int    `json:"nights"`
	NightlyRate int64  `json:"nightly_rate"`
	Total       int64  `json:"total"`
}
