package messages

const (
	AllFieldsRequired = "allFieldsRequired"
	UsernameRequired  = "usernameRequired"
	NameRequired      = "nameRequired"
	LastNameRequired  = "lastNameRequired"
	EmailRequired     = "emailRequired"
	EmailInvalid      = "emailInvalid"
	PasswordRequired  = "passwordRequired"
	DeadlineInvalid   = "deadlineInvalid"
	EstimateInvalid   = "estimateInvalid"

	UsernameExists             = "usernameExists"
	TaskNotFound               = "taskNotFound"
	ClockInRequiresPending     = "clockInRequiresPending"
	ClockOutRequiresInProgress = "clockOutRequiresInProgress"
	CompleteRequiresInProgress = "completeRequiresInProgress"
	InvalidStatusFilter        = "invalidStatusFilter"

	LoginError         = "loginError"
	LoginFailure       = "loginFailure"
	LoginUnexpected    = "loginUnexpected"
	RegisterUnexpected = "registerUnexpected"
	ErrorFetchingTasks = "errorFetchingTasks"
	ErrorFetchingTask  = "errorFetchingTask"
	ErrorCreatingTask  = "errorCreatingTask"
	ErrorEditingTask   = "errorEditingTask"
	ErrorDeletingTask  = "errorDeletingTask"
	ErrorUpdatingTask  = "errorUpdatingTask"
	ErrorCheckingTime  = "errorCheckingTime"

	NoTitle           = "noTitle"
	NoDescription     = "noDescription"
	StatusLine        = "statusLine"
	DeadlineLine      = "deadlineLine"
	EstimatedTimeLine = "estimatedTimeLine"
	TimeSpentLine     = "timeSpentLine"
	StartTimeLine     = "startTimeLine"
	FinishTimeLine    = "finishTimeLine"
	SuggestionLine    = "suggestionLine"
)
