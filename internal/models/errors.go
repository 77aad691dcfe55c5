package models

import "errors"

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberExists    = errors.New("member name already taken")
	ErrAccountNotFound = errors.New("account not found")
)
