package dispatch

// RPC parameter keys. Executors parse these names; they must not change.
const (
	ActionParam         = "action"
	ExecIDParam         = "execid"
	UserParam           = "user"
	ExecIDListParam     = "executionIdList"
	UpdateTimeListParam = "updateTimeList"
)

// ResponseErrorKey is the top-level reply field an executor sets to report a
// failed action.
const ResponseErrorKey = "error"

// NullExecID is how a missing execution id is rendered in the execid
// parameter. Executors in the field compare against this literal.
const NullExecID = "null"

// Executor actions.
const (
	ActionExecute     = "execute"
	ActionPing        = "ping"
	ActionUpdate      = "update"
	ActionCancel      = "cancel"
	ActionPause       = "pause"
	ActionResume      = "resume"
	ActionLog         = "log"
	ActionAttachments = "attachments"
	ActionMetadata    = "metadata"
	ActionGetStatus   = "getStatus"
	ActionActivate    = "activate"
	ActionDeactivate  = "deactivate"
	ActionShutdown    = "shutdown"
)

// ServerStatisticsPath serves ExecutorInfo on bare-metal executors.
const ServerStatisticsPath = "/serverStatistics"
