package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusConflict - 409: conflicting state.
	StatusConflict = 409
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request parameter validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// Employee error codes (101xxx).
const (
	// ErrEmployeeNotFound - 404: employee not found.
	ErrEmployeeNotFound int = iota + 101000
	// ErrEmployeeAlreadyExist - 400: employee already exists.
	ErrEmployeeAlreadyExist
	// ErrCedulaInvalid - 400: cedula failed the checksum validation.
	ErrCedulaInvalid
	// ErrCedulaTaken - 400: cedula already registered to another employee.
	ErrCedulaTaken
)

// Area error codes (102xxx).
const (
	// ErrAreaNotFound - 404: area not found.
	ErrAreaNotFound int = iota + 102000
	// ErrAreaInactive - 400: area is deactivated.
	ErrAreaInactive
	// ErrInvalidCoordinates - 400: latitude/longitude out of range or not numeric.
	ErrInvalidCoordinates
	// ErrInvalidRadius - 400: geofence radius out of bounds.
	ErrInvalidRadius
	// ErrAreaHasEmployees - 400: area still has employees assigned.
	ErrAreaHasEmployees
)

// Schedule error codes (103xxx).
const (
	// ErrScheduleInvalid - 400: malformed weekly schedule definition.
	ErrScheduleInvalid int = iota + 103000
	// ErrScheduleIncompleteDay - 400: active day missing a time bound.
	ErrScheduleIncompleteDay
	// ErrScheduleInvertedWindow - 400: day window start not before end.
	ErrScheduleInvertedWindow
	// ErrScheduleNoActiveDays - 400: custom schedule with zero active days.
	ErrScheduleNoActiveDays
)

// Attendance error codes (104xxx).
const (
	// ErrAttendanceOutOfRange - 400: location outside the area geofence.
	ErrAttendanceOutOfRange int = iota + 104000
	// ErrAttendanceComplete - 409: employee already clocked in and out today.
	ErrAttendanceComplete
	// ErrAttendanceClosed - 400: arrival outside the scheduled window.
	ErrAttendanceClosed
	// ErrAttendanceNotFound - 404: attendance record not found.
	ErrAttendanceNotFound
)

// Face verification error codes (105xxx).
const (
	// ErrFaceNotVerified - 401: face did not match the employee profile.
	ErrFaceNotVerified int = iota + 105000
	// ErrFaceLowConfidence - 401: confidence below the required threshold.
	ErrFaceLowConfidence
	// ErrFaceServiceUnavailable - 500: face collaborator unreachable.
	ErrFaceServiceUnavailable
	// ErrFaceProfileMissing - 400: employee has no trained face profile.
	ErrFaceProfileMissing
)

// Database error codes (106xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)
