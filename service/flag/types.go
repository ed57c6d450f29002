package flag

import "github.com/KijinKims/verstamp/model"

// Service is the interface for command-line flag parsing.
type Service interface {
	GetParsedFlags() (model.Flags, error)
}

type service struct{}
