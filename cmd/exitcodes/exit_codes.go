package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeHandledError indicates that there was an error during the execution of a campaign which was already
	// logged. Note that an error with error code ExitCodeGeneralError and ExitCodeHandledError are mutually
	// exclusive errors
	ExitCodeHandledError = 6

	// ExitCodeWalletsFailed indicates one or more wallets did not complete their lifecycle.
	ExitCodeWalletsFailed = 7
)
