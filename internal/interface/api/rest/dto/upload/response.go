package upload

type Upload struct {
	FileName string `json:"filename"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}
