package api

import "fmt"

// AuthError indicates the identity check failed: the credential is missing
// or invalid.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("api: identity check failed (%d)", e.Status)
}

// FetchError indicates the document listing failed.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("api: listing documents failed (%d)", e.Status)
}

// UploadError indicates the upload was rejected. Detail carries the server
// response body.
type UploadError struct {
	Status int
	Detail string
}

func (e *UploadError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: upload failed (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: upload failed (%d)", e.Status)
}

// AskError indicates the question-answering call failed.
type AskError struct {
	Status int
}

func (e *AskError) Error() string {
	return fmt.Sprintf("api: ask failed (%d)", e.Status)
}
