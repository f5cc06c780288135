package logx

const (
	FieldAppName    = "app-name"
	FieldAppVersion = "app-version"
	FieldDealID     = "deal-id"
	FieldParty      = "party"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldDurationMs = "duration-ms"
	FieldError      = "error"
	FieldHTTPMethod = "http-method"
	FieldHTTPStatus = "http-status"
	FieldRequestID  = "request-id"
	FieldStack      = "stack"
	FieldURL        = "url"
	FieldUserID     = "user-id"
)
