package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the generic success envelope used by mutating endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Roster ---

type uploadResponse struct {
	Message    string `json:"message"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
}

type updateEmployeeRequest struct {
	Location string `json:"location" validate:"required"`
	OldName  string `json:"oldName"  validate:"required"`
	NewName  string `json:"newName"  validate:"required"`
}

type deleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type deleteByUserRequest struct {
	Username string `json:"username" validate:"required"`
	Location string `json:"location" validate:"required"`
}

type deleteByUserResponse struct {
	Message           string `json:"message"`
	SelectionsDeleted int64  `json:"selectionsDeleted"`
	EmployeesDeleted  int64  `json:"employeesDeleted"`
}

// --- Selections ---

type chooseRequest struct {
	UserName string `json:"userName"`
	Location string `json:"location"`
	// NumEmployeesToChoose defaults to 1 when absent, mirroring the frontend
	// contract. A pointer keeps "absent" distinguishable from an explicit 0.
	NumEmployeesToChoose *int `json:"numEmployeesToChoose"`
}

type selectionResponse struct {
	UserName     string `json:"userName"`
	Location     string `json:"location"`
	Employee     string `json:"employee"`
	QuarterStart string `json:"quarterStart"`
}

// --- Accounts ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type fullNameRequest struct {
	Username string `json:"username" validate:"required"`
}

type fullNameResponse struct {
	FullName string `json:"fullName"`
}
