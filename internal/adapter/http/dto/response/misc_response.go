package response

import "tallerpro/internal/domain/status"

type StatusResponse struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	ColorClasses string   `json:"color"`
	Order        int      `json:"order"`
	Terminal     bool     `json:"terminal"`
	Aliases      []string `json:"aliases,omitempty"`
}

type StatusListResponse struct {
	OK       bool             `json:"ok"`
	Default  string           `json:"default"`
	Statuses []StatusResponse `json:"statuses"`
}

func FromRegistry(r *status.Registry) StatusListResponse {
	all := r.All()
	out := make([]StatusResponse, 0, len(all))
	for _, d := range all {
		out = append(out, StatusResponse{
			ID:           string(d.ID),
			Label:        d.Label,
			ColorClasses: d.ColorClasses,
			Order:        d.Order,
			Terminal:     d.Terminal,
			Aliases:      d.Aliases,
		})
	}
	return StatusListResponse{OK: true, Default: string(r.DefaultID()), Statuses: out}
}

type EmailSentData struct {
	ID string `json:"id"`
}

type SendEmailResponse struct {
	OK   bool          `json:"ok"`
	Data EmailSentData `json:"data"`
}
