package request

type LoginRequest struct {
	PIN string `json:"pin"`
}
