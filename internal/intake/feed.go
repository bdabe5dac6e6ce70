package intake

// Order is one service order in the intake feed.
type Order struct {
	ID       string `json:"id"`
	Vehicle  string `json:"vehicle"`
	Customer string `json:"customer"`
	Service  string `json:"service"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// Feed models the top-level structure of the intake feed response.
type Feed struct {
	Orders []Order `json:"orders"`
}
