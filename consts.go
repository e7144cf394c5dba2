package logging

const (
	// DefaultLabel is the label given to records from a Facade built without WithLabel.
	DefaultLabel = "copper"
	emptyString  = ""

	// PrettyTimeLayout renders timestamps with microsecond precision.
	PrettyTimeLayout = "2006-01-02 15:04:05.000000-0700"
)

const (
	errMsgNilConfig       = "Logging config is nil."
	errMsgNilService      = "Logger service is nil."
	errMsgAppCfgNotSet    = "Logging config is not set."
	errMsgConfigInvalid   = "Logging configuration is invalid."
	errMsgWorkingDir      = "Working directory has not been set."
	errMsgLogDir          = "Failed to create logs directory."
	errMsgReadConfig      = "Failed to read logging config file."
	errMsgDecodeConfig    = "Failed to decode logging config file."
	errMsgUnknownSeverity = "Unknown severity"
	errMsgClosed          = "Logger service has been closed."
	errMsgCloseFile       = "Failed to close log file."
)
