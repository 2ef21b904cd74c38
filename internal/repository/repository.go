package repository

import "errors"

var ErrNotFound = errors.New("запись не найдена")

// Entry is one key/value record written by SetMany.
type Entry struct {
	Key   string
	Value []byte
}
