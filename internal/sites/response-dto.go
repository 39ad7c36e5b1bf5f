package sites

// SiteResponse is the public view of a site.
type SiteResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

func toResponse(site Site) SiteResponse {
	return SiteResponse{
		ID:       site.ID,
		Name:     site.Name,
		Location: site.Location,
		Status:   site.Status,
	}
}

func toResponses(sites []Site) []SiteResponse {
	out := make([]SiteResponse, 0, len(sites))
	for _, site := range sites {
		out = append(out, toResponse(site))
	}
	return out
}
