package cracker

import "errors"

var (
	// ErrInvalidThreads is returned when the thread count is outside 1..MaxThreads.
	ErrInvalidThreads = errors.New("thread count out of range")
	// ErrNoPasswords is returned when there are no stored hashes to crack.
	ErrNoPasswords = errors.New("password list is empty")
	// ErrNoCrypter is returned when Options carries no Crypter.
	ErrNoCrypter = errors.New("no crypter configured")
	// ErrNoSink is returned when Options carries no result Sink.
	ErrNoSink = errors.New("no result sink configured")
	// ErrAlreadyRun is returned by a second call to Run on the same Engine.
	ErrAlreadyRun = errors.New("engine has already run")
)
