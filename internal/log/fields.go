package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldOwner       = "owner"
	FieldRuleID      = "rule_id"
	FieldEntryID     = "entry_id"
	FieldGoalID      = "goal_id"
	FieldCategory    = "category"
	FieldKind        = "kind"
	FieldFrequency   = "frequency"
	FieldAmountCents = "amount_cents"
	FieldDueDate     = "due_date"
	FieldNextDate    = "next_date"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentLedger     = "ledger"
	ComponentRecurrence = "recurrence"
	ComponentReporting  = "reporting"
	ComponentGoals      = "goals"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentSheets     = "sheets"
	ComponentCache      = "cache"
	ComponentRateLimit  = "rate_limit"
	ComponentTrace      = "trace"
	ComponentBackend    = "backend"
)

// Operations defines standard operation names
const (
	OpCreate      = "create"
	OpRead        = "read"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpList        = "list"
	OpProcess     = "process"
	OpSummarize   = "summarize"
	OpMaterialize = "materialize"
	OpClaim       = "claim"
	OpSync        = "sync"
	OpShutdown    = "shutdown"
	OpStartup     = "startup"
)
