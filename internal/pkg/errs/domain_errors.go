package errs

import "errors"

// Cross-layer sentinels; usecases mark concrete causes with these
var (
	ErrDomainValidation        = errors.New("domain validation error")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrExternalServiceFailed   = errors.New("external service call failed")
)
