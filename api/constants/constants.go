package constants

// Content types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeText      = "Content-Type"
	ContentTypeMultipart = "multipart/form-data"
	ContentTypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Request keys
const (
	KeyUserID = "user_id"
	KeyFiles  = "files"
)

// Response keys
const (
	ValueSuccess = "success"
	ValueError   = "error"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)
