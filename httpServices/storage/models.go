package storage

// UploadResponse is returned by the storage service on object upload.
type UploadResponse struct {
	Status  string `json:"status"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// RemoveRequest asks the storage service to delete the listed objects.
type RemoveRequest struct {
	Prefixes []string `json:"prefixes"`
}

// RemoveResponse is returned by the storage service on object deletion.
type RemoveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
