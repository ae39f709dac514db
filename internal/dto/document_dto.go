package dto

type DocumentResponse struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type UploadResponse struct {
	SessionId string `json:"session_id"`
	Files     int    `json:"files"`
}

// DocumentsIngestedMessage is the payload published after a successful
// upload has been chunked, embedded and stored.
type DocumentsIngestedMessage struct {
	SessionId string   `json:"session_id"`
	FileNames []string `json:"file_names"`
	Chunks    int      `json:"chunks"`
}
