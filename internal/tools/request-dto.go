package tools

type CreateToolRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	URL         string `json:"url" validate:"required,url"`
	Icon        string `json:"icon" validate:"required,max=64"`
}

type ReorderToolsRequest struct {
	ToolIDs []uint `json:"toolIds" validate:"required,dive,gt=0"`
}
