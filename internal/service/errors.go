package service

import "errors"

var (
	ErrTrainingTypeNotFound = errors.New("training type not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrTrainingNotFound     = errors.New("training not found")
	ErrUserNotFound         = errors.New("user not found")

	ErrTrainerOccupied  = errors.New("trainer is occupied during the requested time")
	ErrLocationOccupied = errors.New("location is occupied during the requested time")

	ErrAlreadyAccepted = errors.New("training has already been accepted")
	ErrAlreadyRejected = errors.New("training has already been rejected")

	ErrAccessDenied = errors.New("user is not allowed to perform this operation")
)
