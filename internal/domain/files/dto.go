package files

// ListResponse is the body of GET /files
type ListResponse struct {
	Files []FileRecord `json:"files"`
	Total int          `json:"total"`
}

// FileResponse is the body of GET /files/{id}
type FileResponse struct {
	File FileRecord `json:"file"`
}

// DeleteRequest is the JSON body accepted by DELETE /files
type DeleteRequest struct {
	ID string `json:"id" validate:"required,max=128"`
}

// DeleteResponse is the body returned after a delete
type DeleteResponse struct {
	Message string   `json:"message"`
	ID      string   `json:"id"`
	Failed  []string `json:"failed,omitempty"`
}
