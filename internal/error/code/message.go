package code

// Error code to user-facing message map
var codeMessageMap = map[int]string{
	// Generic
	ErrSuccess:         "Éxito",
	ErrUnknown:         "Error desconocido",
	ErrBind:            "Error al procesar los parámetros de la solicitud",
	ErrValidation:      "Error de validación de parámetros",
	ErrTokenInvalid:    "Token de autenticación inválido",
	ErrTooManyRequests: "Demasiadas solicitudes",

	// Employee
	ErrEmployeeNotFound:     "El empleado no existe",
	ErrEmployeeAlreadyExist: "El empleado ya existe",
	ErrCedulaInvalid:        "La cédula no es válida",
	ErrCedulaTaken:          "La cédula ya está registrada",

	// Area
	ErrAreaNotFound:       "El área no existe",
	ErrAreaInactive:       "El área está inactiva",
	ErrInvalidCoordinates: "Coordenadas inválidas",
	ErrInvalidRadius:      "Radio fuera de rango (10m - 10000m)",
	ErrAreaHasEmployees:   "El área tiene empleados asignados",

	// Schedule
	ErrScheduleInvalid:        "Horario inválido",
	ErrScheduleIncompleteDay:  "Día activo sin horario completo",
	ErrScheduleInvertedWindow: "La hora de inicio debe ser anterior a la hora de fin",
	ErrScheduleNoActiveDays:   "El horario personalizado no tiene días activos",

	// Attendance
	ErrAttendanceOutOfRange: "Ubicación fuera del área de trabajo",
	ErrAttendanceComplete:   "Ya registró entrada y salida hoy",
	ErrAttendanceClosed:     "Fuera del horario laboral",
	ErrAttendanceNotFound:   "Registro de asistencia no encontrado",

	// Face verification
	ErrFaceNotVerified:        "Rostro no verificado",
	ErrFaceLowConfidence:      "Confianza insuficiente en la verificación facial",
	ErrFaceServiceUnavailable: "Servicio de reconocimiento facial no disponible",
	ErrFaceProfileMissing:     "El empleado no tiene perfil facial entrenado",

	// Database
	ErrDatabase:       "Error de base de datos",
	ErrRecordNotFound: "Registro no encontrado",
}

// Error code to HTTP status map
var codeStatusMap = map[int]int{
	// Generic
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// Employee
	ErrEmployeeNotFound:     StatusNotFound,
	ErrEmployeeAlreadyExist: StatusBadRequest,
	ErrCedulaInvalid:        StatusBadRequest,
	ErrCedulaTaken:          StatusBadRequest,

	// Area
	ErrAreaNotFound:       StatusNotFound,
	ErrAreaInactive:       StatusBadRequest,
	ErrInvalidCoordinates: StatusBadRequest,
	ErrInvalidRadius:      StatusBadRequest,
	ErrAreaHasEmployees:   StatusBadRequest,

	// Schedule
	ErrScheduleInvalid:        StatusBadRequest,
	ErrScheduleIncompleteDay:  StatusBadRequest,
	ErrScheduleInvertedWindow: StatusBadRequest,
	ErrScheduleNoActiveDays:   StatusBadRequest,

	// Attendance
	ErrAttendanceOutOfRange: StatusBadRequest,
	ErrAttendanceComplete:   StatusConflict,
	ErrAttendanceClosed:     StatusBadRequest,
	ErrAttendanceNotFound:   StatusNotFound,

	// Face verification
	ErrFaceNotVerified:        StatusUnauthorized,
	ErrFaceLowConfidence:      StatusUnauthorized,
	ErrFaceServiceUnavailable: StatusInternalServerError,
	ErrFaceProfileMissing:     StatusBadRequest,

	// Database
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Error desconocido"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
