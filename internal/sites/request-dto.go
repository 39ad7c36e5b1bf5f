package sites

type SitesByIDsRequest struct {
	IDs []uint `json:"ids" validate:"required,max=200,dive,gt=0"`
}

type CreateSiteRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Location string `json:"location" validate:"required,max=200"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active planned completed"`
}
