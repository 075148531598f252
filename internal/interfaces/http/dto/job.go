package dto

// TranslationJobResponse 翻译任务受理响应
type TranslationJobResponse struct {
	JobID     string `json:"job_id"`
	ChapterID string `json:"chapter_id"`
	Status    string `json:"status"`
}
