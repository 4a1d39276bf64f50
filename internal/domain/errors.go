package domain

import "errors"

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id")
)

// Exercise library errors
var (
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrInvalidDefinition   = errors.New("invalid exercise definition")
	ErrInvalidSimilarity   = errors.New("similarity must be between 0 and 1")
	ErrInvalidRelationType = errors.New("invalid relation type")
	ErrSelfRelation        = errors.New("an exercise cannot relate to itself")
	ErrNotEditable         = errors.New("exercise is part of the catalog and cannot be modified")
)

// Set logging errors
var (
	ErrSetTypeNotAllowed = errors.New("set type not allowed for this exercise")
	ErrInvalidSet        = errors.New("invalid set")
)
