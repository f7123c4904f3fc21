package employeeerrors

import (
	"net/http"

	"github.com/AndreiCindea/workflow-service/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same employee code already exists",
		http.StatusConflict,
	)
	ErrMissingEmployeeCode = apperror.New(
		apperror.CodeInvalidInput,
		"Employee code is required",
		http.StatusBadRequest,
	)
)
