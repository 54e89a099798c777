package cmd

// Exit codes for the formpost CLI
const (
	// ExitSuccess indicates the upload(s) were accepted
	ExitSuccess = 0

	// ExitUploadFailure indicates at least one upload failed or was rejected
	ExitUploadFailure = 1

	// ExitConfigError indicates a configuration or manifest error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
